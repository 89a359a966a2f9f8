package controller

import (
	"context"
	"net/http"

	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// contentOps erases the entity type so the admin endpoints can operate
// on any content collection selected at request time.
type contentOps struct {
	list  func(ctx context.Context) (any, int, error)
	del   func(ctx context.Context, id string) error
	count func(ctx context.Context) (int64, error)
}

func opsFor[T any, PT document.EntityPtr[T]](repo *document.Repository[T, PT]) contentOps {
	return contentOps{
		list: func(ctx context.Context) (any, int, error) {
			items, err := repo.Find(nil).
				WithPopulate("createdBy", usersCollection).
				SortBy("createdAt", document.SortDesc).
				Execute(ctx)
			if err != nil {
				return nil, 0, err
			}
			return items, len(items), nil
		},
		del: func(ctx context.Context, id string) error {
			return repo.Delete(ctx, id)
		},
		count: func(ctx context.Context) (int64, error) {
			return repo.Count(ctx, nil)
		},
	}
}

// AdminController serves the moderation surface: platform statistics,
// user verification, and cross-collection content management.
type AdminController struct {
	repos   *Repos
	content map[string]contentOps
	log     logger.Logger
}

// NewAdminController builds the controller with the content registry
// keyed by collection name.
func NewAdminController(repos *Repos, log logger.Logger) *AdminController {
	return &AdminController{
		repos: repos,
		content: map[string]contentOps{
			"jobs":           opsFor(repos.Jobs),
			"internships":    opsFor(repos.Internships),
			"research":       opsFor(repos.Research),
			"challenges":     opsFor(repos.Challenges),
			"speakers":       opsFor(repos.Speakers),
			"fyps":           opsFor(repos.FYPs),
			"projects":       opsFor(repos.Projects),
			"courses":        opsFor(repos.Courses),
			"trainings":      opsFor(repos.Trainings),
			"collaborations": opsFor(repos.Collaborations),
		},
		log: log,
	}
}

// Stats returns platform-wide totals: users by role and verification,
// content counts per collection, and inquiries by status.
func (a *AdminController) Stats(c router.Context) error {
	ctx := c.Request().Context()

	users := map[string]any{}
	total, err := a.repos.Users.Count(ctx, nil)
	if err != nil {
		return a.statsError(c, "users", err)
	}
	users["total"] = total
	for _, role := range []models.Role{models.RoleIndustry, models.RoleUniversity, models.RoleAdmin, models.RoleStudent} {
		n, err := a.repos.Users.Count(ctx, document.Filter{"role": string(role)})
		if err != nil {
			return a.statsError(c, "users", err)
		}
		users[string(role)] = n
	}
	verified, err := a.repos.Users.Count(ctx, document.Filter{"isVerified": true})
	if err != nil {
		return a.statsError(c, "users", err)
	}
	users["verified"] = verified

	content := map[string]any{}
	for name, ops := range a.content {
		n, err := ops.count(ctx)
		if err != nil {
			return a.statsError(c, name, err)
		}
		content[name] = n
	}

	inquiries := map[string]any{}
	inquiryTotal, err := a.repos.Inquiries.Count(ctx, nil)
	if err != nil {
		return a.statsError(c, "inquiries", err)
	}
	inquiries["total"] = inquiryTotal
	for _, status := range []models.InquiryStatus{models.InquiryPending, models.InquiryReviewed, models.InquiryResolved} {
		n, err := a.repos.Inquiries.Count(ctx, document.Filter{"status": string(status)})
		if err != nil {
			return a.statsError(c, "inquiries", err)
		}
		inquiries[string(status)] = n
	}

	return Success(c, map[string]any{
		"users":     users,
		"content":   content,
		"inquiries": inquiries,
	})
}

func (a *AdminController) statsError(c router.Context, entity string, err error) error {
	a.log.Error("admin stats failed", "entity", entity, "error", err)
	return Error(c, NewInternalError("stats aggregation failed", err))
}

// ListUsers returns every registered profile, newest first.
func (a *AdminController) ListUsers(c router.Context) error {
	users, err := a.repos.Users.Find(nil).
		SortBy("createdAt", document.SortDesc).
		Execute(c.Request().Context())
	if err != nil {
		a.log.Error("user list failed", "error", err)
		return Error(c, NewInternalError("user list failed", err))
	}
	return List(c, users)
}

type verifyRequest struct {
	IsVerified *bool `json:"isVerified"`
}

// VerifyUser sets a user's verification flag. The body may carry
// {"isVerified": false} to revoke; an empty body verifies.
func (a *AdminController) VerifyUser(c router.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	user, err := a.repos.Users.FindByID(ctx, id)
	if err != nil {
		a.log.Error("user lookup failed", "error", err, "user_id", id)
		return Error(c, NewInternalError("user lookup failed", err))
	}
	if user == nil {
		return Fail(c, http.StatusNotFound, "user not found")
	}

	verified := true
	var req verifyRequest
	if err := c.Bind(&req); err == nil && req.IsVerified != nil {
		verified = *req.IsVerified
	}

	user.IsVerified = verified
	if err := a.repos.Users.Save(ctx, user); err != nil {
		a.log.Error("user save failed", "error", err, "user_id", id)
		return Error(c, NewInternalError("user save failed", err))
	}
	return Success(c, user)
}

// DeleteUser removes a user profile. Admin accounts are not deletable.
func (a *AdminController) DeleteUser(c router.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	user, err := a.repos.Users.FindByID(ctx, id)
	if err != nil {
		a.log.Error("user lookup failed", "error", err, "user_id", id)
		return Error(c, NewInternalError("user lookup failed", err))
	}
	if user == nil {
		return Fail(c, http.StatusNotFound, "user not found")
	}
	if user.Role == models.RoleAdmin {
		return Fail(c, http.StatusForbidden, "admin accounts cannot be deleted")
	}

	if err := a.repos.Users.Delete(ctx, id); err != nil {
		return Error(c, err)
	}
	return Success(c, map[string]string{"id": id})
}

// ListInquiries returns every inquiry, newest first.
func (a *AdminController) ListInquiries(c router.Context) error {
	inquiries, err := a.repos.Inquiries.Find(nil).
		SortBy("createdAt", document.SortDesc).
		Execute(c.Request().Context())
	if err != nil {
		a.log.Error("inquiry list failed", "error", err)
		return Error(c, NewInternalError("inquiry list failed", err))
	}
	return List(c, inquiries)
}

type inquiryStatusRequest struct {
	Status models.InquiryStatus `json:"status"`
}

// UpdateInquiryStatus moves an inquiry through its review workflow.
func (a *AdminController) UpdateInquiryStatus(c router.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req inquiryStatusRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	if !req.Status.Valid() {
		return Fail(c, http.StatusBadRequest, "invalid inquiry status")
	}

	inquiry, err := a.repos.Inquiries.FindByID(ctx, id)
	if err != nil {
		a.log.Error("inquiry lookup failed", "error", err, "inquiry_id", id)
		return Error(c, NewInternalError("inquiry lookup failed", err))
	}
	if inquiry == nil {
		return Fail(c, http.StatusNotFound, "inquiry not found")
	}

	inquiry.Status = req.Status
	if err := a.repos.Inquiries.Save(ctx, inquiry); err != nil {
		a.log.Error("inquiry save failed", "error", err, "inquiry_id", id)
		return Error(c, NewInternalError("inquiry save failed", err))
	}
	return Success(c, inquiry)
}

// DeleteInquiry removes an inquiry.
func (a *AdminController) DeleteInquiry(c router.Context) error {
	id := c.Param("id")
	if err := a.repos.Inquiries.Delete(c.Request().Context(), id); err != nil {
		return Error(c, err)
	}
	return Success(c, map[string]string{"id": id})
}

// ContentList returns every document of the collection named by the
// type query parameter, creator populated, newest first.
func (a *AdminController) ContentList(c router.Context) error {
	ops, ok := a.content[c.Query("type")]
	if !ok {
		return Fail(c, http.StatusBadRequest, "unknown content type")
	}

	items, count, err := ops.list(c.Request().Context())
	if err != nil {
		a.log.Error("content list failed", "type", c.Query("type"), "error", err)
		return Error(c, NewInternalError("content list failed", err))
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: items, Count: &count})
}

// ContentDelete removes a document from the collection named by the
// type query parameter, regardless of creator.
func (a *AdminController) ContentDelete(c router.Context) error {
	ops, ok := a.content[c.Query("type")]
	if !ok {
		return Fail(c, http.StatusBadRequest, "unknown content type")
	}

	id := c.Param("id")
	if err := ops.del(c.Request().Context(), id); err != nil {
		return Error(c, err)
	}
	return Success(c, map[string]string{"id": id})
}
