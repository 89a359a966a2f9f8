// Package authn verifies identity tokens and attaches the caller's
// local profile and role to the request.
package authn

import (
	"net/http"

	"github.com/campusbridge/campusbridge/pkg/auth"
	"github.com/campusbridge/campusbridge/pkg/middleware"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// Middleware carries the verifier and user lookup shared by the
// authentication chain.
type Middleware struct {
	verifier auth.TokenVerifier
	users    *document.Repository[models.User, *models.User]
	log      logger.Logger
}

// New creates the authentication middleware set.
func New(verifier auth.TokenVerifier, users *document.Repository[models.User, *models.User], log logger.Logger) *Middleware {
	return &Middleware{verifier: verifier, users: users, log: log}
}

// Authenticate rejects requests without a valid bearer token and
// attaches the verified identity. It does not require a local profile;
// registration runs with identity only.
func (m *Middleware) Authenticate() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			token, ok := auth.BearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return unauthorized(c, "missing bearer token")
			}

			identity, err := m.verifier.Verify(c.Request().Context(), token)
			if err != nil {
				m.log.Debug("token verification failed", "error", err)
				return unauthorized(c, "invalid or expired token")
			}

			c.Set(string(middleware.IdentityKey), identity)
			return next(c)
		}
	}
}

// RequireRole loads the caller's profile and rejects callers whose
// role is not in the allow-list. Runs after Authenticate.
func (m *Middleware) RequireRole(roles ...models.Role) router.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return unauthorized(c, "not authenticated")
			}

			user, err := m.users.FindByID(c.Request().Context(), identity.Subject)
			if err != nil {
				m.log.Error("profile lookup failed", "error", err, "subject", identity.Subject)
				return c.JSON(http.StatusInternalServerError, envelope("an unexpected error occurred"))
			}
			if user == nil {
				return forbidden(c, "no profile registered for this identity")
			}
			if _, ok := allowed[user.Role]; !ok {
				return forbidden(c, "insufficient role")
			}

			c.Set(string(middleware.UserKey), user)
			return next(c)
		}
	}
}

// IdentityFrom returns the verified identity attached by Authenticate.
func IdentityFrom(c router.Context) *auth.Identity {
	identity, _ := c.Get(string(middleware.IdentityKey)).(*auth.Identity)
	return identity
}

// UserFrom returns the profile attached by RequireRole.
func UserFrom(c router.Context) *models.User {
	user, _ := c.Get(string(middleware.UserKey)).(*models.User)
	return user
}

func unauthorized(c router.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, envelope(msg))
}

func forbidden(c router.Context, msg string) error {
	return c.JSON(http.StatusForbidden, envelope(msg))
}

func envelope(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}
