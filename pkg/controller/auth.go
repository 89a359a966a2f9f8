package controller

import (
	"net/http"
	"strings"

	"github.com/campusbridge/campusbridge/pkg/middleware/authn"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// AuthController creates and serves local profiles for externally
// verified identities.
type AuthController struct {
	users      *document.Repository[models.User, *models.User]
	adminEmail string
	log        logger.Logger
}

// NewAuthController builds the controller. adminEmail designates the
// super-admin account created on first registration.
func NewAuthController(users *document.Repository[models.User, *models.User], adminEmail string, log logger.Logger) *AuthController {
	return &AuthController{users: users, adminEmail: strings.ToLower(adminEmail), log: log}
}

type registerRequest struct {
	Email   string         `json:"email"`
	Role    models.Role    `json:"role"`
	Profile models.Profile `json:"profile"`
}

// Register creates the local profile for an identity-verified caller.
// The user id is the identity subject. Registering the configured
// admin email always yields a verified admin, whatever role the body
// asked for; students are auto-verified too.
func (a *AuthController) Register(c router.Context) error {
	identity := authn.IdentityFrom(c)
	if identity == nil {
		return Fail(c, http.StatusUnauthorized, "not authenticated")
	}

	existing, err := a.users.FindByID(c.Request().Context(), identity.Subject)
	if err != nil {
		a.log.Error("profile lookup failed", "error", err)
		return Error(c, NewInternalError("profile lookup failed", err))
	}
	if existing != nil {
		return Fail(c, http.StatusBadRequest, "a profile already exists for this identity")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	email := identity.Email
	if email == "" {
		email = req.Email
	}

	user := &models.User{
		Email:   email,
		Role:    req.Role,
		Profile: req.Profile,
	}
	user.SetID(identity.Subject)

	switch {
	case a.adminEmail != "" && strings.EqualFold(email, a.adminEmail):
		user.Role = models.RoleAdmin
		user.IsVerified = true
	case user.Role == models.RoleStudent:
		user.IsVerified = true
	default:
		user.IsVerified = false
	}
	// Admin role cannot be claimed through the request body.
	if user.Role == models.RoleAdmin && !strings.EqualFold(email, a.adminEmail) {
		return Fail(c, http.StatusBadRequest, "invalid role")
	}

	if err := user.Validate(); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := a.users.Save(c.Request().Context(), user); err != nil {
		a.log.Error("profile save failed", "error", err)
		return Error(c, NewInternalError("profile save failed", err))
	}
	return Created(c, user)
}

// Me returns the caller's resolved profile, or 404 when none exists
// yet.
func (a *AuthController) Me(c router.Context) error {
	identity := authn.IdentityFrom(c)
	if identity == nil {
		return Fail(c, http.StatusUnauthorized, "not authenticated")
	}

	user, err := a.users.FindByID(c.Request().Context(), identity.Subject)
	if err != nil {
		a.log.Error("profile lookup failed", "error", err)
		return Error(c, NewInternalError("profile lookup failed", err))
	}
	if user == nil {
		return Fail(c, http.StatusNotFound, "no profile registered for this identity")
	}
	return Success(c, user)
}
