package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/api/middleware"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext resolves the acting user: the role gate's cached user
// when present, otherwise a lookup by token user id, otherwise the guest
// identity.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	if cached, ok := ctx.Get(middleware.ContextKeyUser); ok {
		if user, ok := cached.(domain.User); ok {
			return user, nil
		}
	}

	userID, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.Guest(), nil
	}

	id, ok := userID.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("malformed user id in context"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(fmt.Errorf("unknown user %v", id))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}
