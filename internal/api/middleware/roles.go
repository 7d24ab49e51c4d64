package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
)

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireRole resolves the authenticated user once at the routing layer and
// rejects roles outside the allowed set. Requests without a user id run as
// the guest identity.
func RequireRole(users UserGetter, roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(ctx *gin.Context) {
		user := domain.Guest()

		if userID, ok := ctx.Get(ContextKeyUserID); ok {
			id, _ := userID.(uint)

			resolved, err := users.GetUser(ctx.Request.Context(), id)
			if err != nil {
				response.RenderErr(ctx, response.ErrUnauthorized(fmt.Errorf("unknown user %v", id)))
				return
			}
			user = resolved
		}

		if _, ok := allowed[user.Role]; !ok {
			response.RenderErr(ctx, response.ErrPermissionDenied(
				fmt.Errorf("role %v may not access this resource", user.Role)))
			return
		}

		ctx.Set(ContextKeyUser, user)
		ctx.Next()
	}
}
