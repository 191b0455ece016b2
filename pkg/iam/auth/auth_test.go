package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seeker = kernel.Identity{UserID: "u-1", Role: kernel.RoleJobSeeker}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "seeker", time.Hour)

	token, err := svc.GenerateAccessToken(seeker)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeker, claims.Identity())
	assert.Contains(t, claims.Scopes, ScopeCandidatesWrite)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "seeker", time.Hour)
	token, err := svc.GenerateAccessToken(seeker)
	require.NoError(t, err)

	_, err = NewJWTService("other", "seeker", time.Hour).ValidateAccessToken(token)
	assert.True(t, errx.IsCode(err, CodeInvalidToken))

	_, err = NewJWTService("secret", "someone-else", time.Hour).ValidateAccessToken(token)
	assert.True(t, errx.IsCode(err, CodeInvalidToken))

	expired := NewJWTService("secret", "seeker", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken(seeker)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(old)
	require.Error(t, err)
	e, _ := errx.As(err)
	assert.Equal(t, "expired", e.Details["reason"])

	_, err = svc.GenerateAccessToken(kernel.Identity{})
	assert.True(t, errx.IsCode(err, CodeTokenGeneration))
}

func TestHasScope(t *testing.T) {
	assert.True(t, HasScope([]string{ScopeCandidatesRead}, ScopeCandidatesRead))
	assert.True(t, HasScope([]string{ScopeCandidatesAll}, ScopeCandidatesWrite))
	assert.False(t, HasScope([]string{ScopeProfileAll}, ScopeCandidatesWrite))
	assert.False(t, HasScope(nil, ScopeProfileRead))
}

func newApp(svc TokenService, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	handlers := append([]fiber.Handler{Middleware(svc)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, _ := GetIdentity(c)
		return c.SendString(identity.UserID.String())
	})
	app.Get("/me", handlers...)
	return app
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTService("secret", "", time.Hour)
	token, err := svc.GenerateAccessToken(seeker)
	require.NoError(t, err)
	app := newApp(svc, RequireRole(kernel.RoleJobSeeker), RequireScope(ScopeProfileRead))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bad format", "Token " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	svc := NewJWTService("secret", "", time.Hour)
	token, err := svc.GenerateAccessToken(kernel.Identity{UserID: "e-1", Role: kernel.RoleEmployer})
	require.NoError(t, err)

	app := newApp(svc, RequireRole(kernel.RoleJobSeeker))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
