package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campusbridge/campusbridge/pkg/middleware/authn"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
	"github.com/campusbridge/campusbridge/pkg/upload"
)

// usersCollection is where creator references resolve.
const usersCollection = "users"

// imageSetter is implemented by content types that accept an uploaded
// image path.
type imageSetter interface {
	SetImage(path string)
}

// timestamped guards the creation timestamp across merge updates.
type timestamped interface {
	CreatedTime() string
	SetCreatedTime(ts string)
}

// CRUD produces the four generic handlers for one content entity type.
// Create accepts JSON directly or a multipart form with a "data" JSON
// part and an optional "image" file.
type CRUD[T any, PT document.EntityPtr[T]] struct {
	repo    *document.Repository[T, PT]
	uploads upload.Storage
	log     logger.Logger
}

// NewCRUD builds the handler set. uploads may be nil when image upload
// is disabled.
func NewCRUD[T any, PT document.EntityPtr[T]](repo *document.Repository[T, PT], uploads upload.Storage, log logger.Logger) *CRUD[T, PT] {
	return &CRUD[T, PT]{repo: repo, uploads: uploads, log: log}
}

// CreateOne persists a new entity owned by the authenticated user. The
// creator reference always comes from the session, never from the
// request body, and the store assigns the id.
func (h *CRUD[T, PT]) CreateOne(c router.Context) error {
	user := authn.UserFrom(c)
	if user == nil {
		return Fail(c, http.StatusUnauthorized, "not authenticated")
	}

	var entity T
	ptr := PT(&entity)

	imagePath, err := h.bind(c, ptr)
	if err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	ptr.SetID("")
	if ref := ptr.CreatorRef(); ref != nil {
		*ref = document.Ref{ID: user.ID}
	}
	if imagePath != "" {
		if setter, ok := any(ptr).(imageSetter); ok {
			setter.SetImage(imagePath)
		}
	}

	if err := ptr.Validate(); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.repo.Save(c.Request().Context(), ptr); err != nil {
		h.log.Error("save failed", "error", err)
		return Error(c, NewInternalError("save failed", err))
	}
	return Created(c, ptr)
}

// GetAll lists entities newest first with the creator populated.
// ?mine=true restricts to the caller's own entities and ?search=<text>
// filters by title, case-insensitively.
func (h *CRUD[T, PT]) GetAll(c router.Context) error {
	q := h.repo.Find(nil).
		WithPopulate("createdBy", usersCollection).
		SortBy("createdAt", document.SortDesc)

	if isTrue(c.Query("mine")) {
		identity := authn.IdentityFrom(c)
		if identity == nil {
			return Fail(c, http.StatusUnauthorized, "not authenticated")
		}
		q.Where("createdBy", identity.Subject)
	}
	if search := c.Query("search"); search != "" {
		q.Search("title", search)
	}

	items, err := q.Execute(c.Request().Context())
	if err != nil {
		return h.queryError(c, err)
	}
	return List(c, items)
}

// GetOne fetches one entity by id with the creator populated.
func (h *CRUD[T, PT]) GetOne(c router.Context) error {
	entity, err := h.repo.FindByID(c.Request().Context(), c.Param("id"),
		document.Populate{Field: "createdBy", Collection: usersCollection})
	if err != nil {
		h.log.Error("lookup failed", "error", err)
		return Error(c, NewInternalError("lookup failed", err))
	}
	if entity == nil {
		return Fail(c, http.StatusNotFound, "resource not found")
	}
	return Success(c, entity)
}

// UpdateOne merges the request body into the stored entity. Absent
// fields keep their stored values; id, creator and creation time are
// immutable. Only the creator or an admin may update.
func (h *CRUD[T, PT]) UpdateOne(c router.Context) error {
	user := authn.UserFrom(c)
	if user == nil {
		return Fail(c, http.StatusUnauthorized, "not authenticated")
	}

	id := c.Param("id")
	entity, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		h.log.Error("lookup failed", "error", err)
		return Error(c, NewInternalError("lookup failed", err))
	}
	if entity == nil {
		return Fail(c, http.StatusNotFound, "resource not found")
	}

	creatorID := ""
	if ref := entity.CreatorRef(); ref != nil {
		creatorID = ref.ID
	}
	if !canModify(user, creatorID) {
		return Fail(c, http.StatusForbidden, "only the creator or an admin may modify this resource")
	}

	var createdAt string
	if ts, ok := any(entity).(timestamped); ok {
		createdAt = ts.CreatedTime()
	}

	if err := c.Bind(entity); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	// The body must not move ownership, identity or creation time.
	entity.SetID(id)
	if ref := entity.CreatorRef(); ref != nil {
		*ref = document.Ref{ID: creatorID}
	}
	if ts, ok := any(entity).(timestamped); ok && createdAt != "" {
		ts.SetCreatedTime(createdAt)
	}

	if err := entity.Validate(); err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.repo.Save(c.Request().Context(), entity); err != nil {
		h.log.Error("save failed", "error", err)
		return Error(c, NewInternalError("save failed", err))
	}
	return Success(c, entity)
}

// DeleteOne removes an entity after the ownership check: only the
// creator or an admin may delete, and the check always compares the
// raw creator id.
func (h *CRUD[T, PT]) DeleteOne(c router.Context) error {
	user := authn.UserFrom(c)
	if user == nil {
		return Fail(c, http.StatusUnauthorized, "not authenticated")
	}

	id := c.Param("id")
	entity, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		h.log.Error("lookup failed", "error", err)
		return Error(c, NewInternalError("lookup failed", err))
	}
	if entity == nil {
		return Fail(c, http.StatusNotFound, "resource not found")
	}

	creatorID := ""
	if ref := entity.CreatorRef(); ref != nil {
		creatorID = ref.ID
	}
	if !canModify(user, creatorID) {
		return Fail(c, http.StatusForbidden, "only the creator or an admin may delete this resource")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return Error(c, err)
	}
	return Success(c, map[string]any{"id": id})
}

// bind decodes the request into the entity and stores an uploaded
// image when one is attached.
func (h *CRUD[T, PT]) bind(c router.Context, ptr PT) (string, error) {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.Contains(contentType, "multipart/form-data") {
		return "", c.Bind(ptr)
	}

	data := c.FormValue("data")
	if data != "" {
		if err := json.Unmarshal([]byte(data), ptr); err != nil {
			return "", err
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No image part attached.
		return "", nil
	}
	if h.uploads == nil {
		return "", nil
	}
	return h.uploads.Store(c.Request().Context(), file)
}

func (h *CRUD[T, PT]) queryError(c router.Context, err error) error {
	if errors.Is(err, document.ErrInvalidFilter) {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	h.log.Error("query failed", "error", err)
	return Error(c, NewInternalError("query failed", err))
}

func canModify(user *models.User, creatorID string) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return creatorID != "" && user.ID == creatorID
}

func isTrue(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
