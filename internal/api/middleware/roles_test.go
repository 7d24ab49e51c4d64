package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardland/boardland-api/internal/domain"
)

type stubUserGetter struct {
	users map[uint]domain.User
}

func (g *stubUserGetter) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := g.users[id]
	if !ok {
		return domain.User{}, assert.AnError
	}

	return user, nil
}

func performWithRole(t *testing.T, userID interface{}, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	getter := &stubUserGetter{
		users: map[uint]domain.User{
			1: {ID: 1, Email: "alice@example.com", Role: domain.RoleSeller},
			2: {ID: 2, Email: "max@example.com", Role: domain.RoleManager},
		},
	}

	router := gin.New()
	router.GET("/resource",
		func(ctx *gin.Context) {
			if userID != nil {
				ctx.Set(ContextKeyUserID, userID)
			}
		},
		RequireRole(getter, allowed...),
		func(ctx *gin.Context) {
			user, _ := ctx.Get(ContextKeyUser)
			ctx.JSON(http.StatusOK, user)
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/resource", nil))

	return recorder
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	recorder := performWithRole(t, uint(1), domain.RoleSeller, domain.RoleManager)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "alice@example.com")
}

func TestRequireRole_RejectsOtherRoles(t *testing.T) {
	recorder := performWithRole(t, uint(1), domain.RoleManager, domain.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRequireRole_AnonymousRunsAsGuest(t *testing.T) {
	recorder := performWithRole(t, nil, domain.RoleGuest, domain.RoleSeller)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), domain.GuestEmail)
}

func TestRequireRole_AnonymousRejectedWithoutGuestRole(t *testing.T) {
	recorder := performWithRole(t, nil, domain.RoleManager)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRequireRole_UnknownUserRejected(t *testing.T) {
	recorder := performWithRole(t, uint(99), domain.RoleSeller)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
