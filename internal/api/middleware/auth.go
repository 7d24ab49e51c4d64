package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/pkg/jwthelper"
)

// Context keys shared with the handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyUser   = "user"
)

var (
	errMissingAuthHeader = errors.New("authorization header is missing")
	errInvalidAuthHeader = errors.New("authorization header is malformed")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := a.parseHeader(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// OptionalJWT lets unauthenticated requests through as the guest identity
// while still resolving a token when one is present.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			ctx.Next()
			return
		}

		claims, err := a.parseHeader(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

func (a *Authenticator) parseHeader(ctx *gin.Context) (*jwthelper.UserClaims, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return nil, errMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errInvalidAuthHeader
	}

	claims, err := jwthelper.ParseToken(a.signingKey, parts[1])
	if err != nil {
		return nil, jwthelper.ErrInvalidToken
	}

	return claims, nil
}
