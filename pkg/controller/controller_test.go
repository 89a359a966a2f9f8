package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusbridge/campusbridge/pkg/auth"
	"github.com/campusbridge/campusbridge/pkg/middleware/authn"
	"github.com/campusbridge/campusbridge/pkg/middleware/testutil"
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/server/router"
	ginrouter "github.com/campusbridge/campusbridge/pkg/server/router/gin"
)

const adminEmail = "root@example.com"

// stubVerifier accepts any token and uses it as the subject, with the
// email derived as <token>@example.com.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Identity{Subject: token, Email: token + "@example.com"}, nil
}

type testEnv struct {
	client *document.MemoryClient
	repos  *Repos
	router *ginrouter.GinRouter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	client := document.NewMemoryClient()
	cache := document.NewMemoryRefCache(0)
	repos := NewRepos(client, cache)
	log := testutil.NewMockLogger()
	authMW := authn.New(stubVerifier{}, repos.Users, log)

	r := ginrouter.NewRouter()
	api := r.Group("/api")

	authCtl := NewAuthController(repos.Users, adminEmail, log)
	authGroup := api.Group("/auth", authMW.Authenticate())
	authGroup.POST("/register", authCtl.Register)
	authGroup.GET("/me", authCtl.Me)

	jobs := NewCRUD(repos.Jobs, nil, log)
	requireIndustry := authMW.RequireRole(models.RoleIndustry, models.RoleAdmin)
	industry := api.Group("/industry", authMW.Authenticate())
	industry.GET("/jobs", jobs.GetAll)
	industry.POST("/jobs", jobs.CreateOne, requireIndustry)
	industry.GET("/jobs/:id", jobs.GetOne)
	industry.PUT("/jobs/:id", jobs.UpdateOne, requireIndustry)
	industry.DELETE("/jobs/:id", jobs.DeleteOne, requireIndustry)

	statsCtl := NewStatsController(repos, log)
	industry.GET("/stats", statsCtl.Industry)

	inquiryCtl := NewInquiryController(repos.Inquiries, nil, log)
	api.POST("/inquiries", inquiryCtl.Create)

	adminCtl := NewAdminController(repos, log)
	admin := api.Group("/admin", authMW.Authenticate(), authMW.RequireRole(models.RoleAdmin))
	admin.GET("/stats", adminCtl.Stats)
	admin.GET("/users", adminCtl.ListUsers)
	admin.PUT("/users/:id/verify", adminCtl.VerifyUser)
	admin.DELETE("/users/:id", adminCtl.DeleteUser)
	admin.GET("/inquiries", adminCtl.ListInquiries)
	admin.PUT("/inquiries/:id/status", adminCtl.UpdateInquiryStatus)
	admin.DELETE("/inquiries/:id", adminCtl.DeleteInquiry)
	admin.GET("/content", adminCtl.ContentList)
	admin.DELETE("/content/:id", adminCtl.ContentDelete)

	r.NoRoute(func(c router.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "route not found"})
	})

	return &testEnv{client: client, repos: repos, router: r}
}

// seedUser creates a local profile directly in the store.
func (e *testEnv) seedUser(t *testing.T, subject string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Email:      subject + "@example.com",
		Role:       role,
		Profile:    models.Profile{Name: "Test " + subject},
		IsVerified: true,
	}
	user.SetID(subject)
	if err := e.repos.Users.Save(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", subject, err)
	}
	return user
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return out
}

func TestRegisterCreatesUnverifiedProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "alice", map[string]any{
		"role":    "university",
		"profile": map[string]any{"name": "Alice"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	data := body["data"].(map[string]any)
	if data["id"] != "alice" {
		t.Fatalf("id = %v, want identity subject alice", data["id"])
	}
	if data["isVerified"] != false {
		t.Fatalf("isVerified = %v, want false for university role", data["isVerified"])
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]any{"role": "industry", "profile": map[string]any{"name": "Bob"}}

	if rec := env.do(t, http.MethodPost, "/api/auth/register", "bob", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/api/auth/register", "bob", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second register status = %d, want 400", rec.Code)
	}
}

func TestRegisterAdminEmailBecomesVerifiedAdmin(t *testing.T) {
	env := newTestEnv(t)

	// Token "root" maps to root@example.com, the configured admin.
	rec := env.do(t, http.MethodPost, "/api/auth/register", "root", map[string]any{
		"role":    "university",
		"profile": map[string]any{"name": "Root"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["role"] != "admin" {
		t.Fatalf("role = %v, want admin regardless of requested role", data["role"])
	}
	if data["isVerified"] != true {
		t.Fatalf("isVerified = %v, want true for admin email", data["isVerified"])
	}
}

func TestRegisterRejectsClaimedAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "mallory", map[string]any{
		"role":    "admin",
		"profile": map[string]any{"name": "Mallory"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for claimed admin role", rec.Code)
	}
}

func TestMeBeforeAndAfterRegister(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/api/auth/me", "carol", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("me before register: status = %d, want 404", rec.Code)
	}

	env.seedUser(t, "carol", models.RoleUniversity)
	rec := env.do(t, http.MethodGet, "/api/auth/me", "carol", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me after register: status = %d, want 200", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["id"] != "carol" {
		t.Fatalf("id = %v, want carol", data["id"])
	}
}

func TestUnverifiedUserCanStillPost(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "fresh", map[string]any{
		"role":    "industry",
		"profile": map[string]any{"name": "Fresh"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", rec.Code)
	}
	if v := decodeEnvelope(t, rec)["data"].(map[string]any)["isVerified"]; v != false {
		t.Fatalf("isVerified = %v, want false at registration", v)
	}

	createJob(t, env, "fresh", "First Posting")
	rec = env.do(t, http.MethodGet, "/api/industry/jobs?mine=true", "fresh", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	if got := decodeEnvelope(t, rec)["count"]; got != float64(1) {
		t.Fatalf("count = %v, verification must not gate the user's own writes", got)
	}
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/industry/jobs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without token", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
}

func TestCreateJobRequiresSectorRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uni", models.RoleUniversity)
	env.seedUser(t, "ind", models.RoleIndustry)

	payload := map[string]any{"title": "Backend Engineer", "description": "Go services"}

	if rec := env.do(t, http.MethodPost, "/api/industry/jobs", "uni", payload); rec.Code != http.StatusForbidden {
		t.Fatalf("university poster: status = %d, want 403", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/industry/jobs", "ind", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("industry poster: status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["createdBy"] != "ind" {
		t.Fatalf("createdBy = %v, want session user id ind", data["createdBy"])
	}
	if data["id"] == "" || data["id"] == nil {
		t.Fatal("id should be store-assigned")
	}
}

func TestCreateJobIgnoresBodyCreator(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)

	rec := env.do(t, http.MethodPost, "/api/industry/jobs", "ind", map[string]any{
		"title":       "Spoofed",
		"description": "creator from body",
		"createdBy":   "someone-else",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["createdBy"] != "ind" {
		t.Fatalf("createdBy = %v, want ind (body value must be ignored)", data["createdBy"])
	}
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)

	rec := env.do(t, http.MethodPost, "/api/industry/jobs", "ind", map[string]any{
		"description": "missing title",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing title", rec.Code)
	}
}

func createJob(t *testing.T, env *testEnv, token, title string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/industry/jobs", token, map[string]any{
		"title":       title,
		"description": "description for " + title,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job %q: status = %d (body %s)", title, rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	return data["id"].(string)
}

func TestListJobsEnvelopeAndPopulation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)
	createJob(t, env, "ind", "AI Research Lead")
	createJob(t, env, "ind", "Backend Engineer")

	rec := env.do(t, http.MethodGet, "/api/industry/jobs", "ind", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	if body["count"] != float64(2) {
		t.Fatalf("count = %v, want 2", body["count"])
	}
	items := body["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	creator, ok := items[0].(map[string]any)["createdBy"].(map[string]any)
	if !ok {
		t.Fatalf("createdBy not populated: %v", items[0].(map[string]any)["createdBy"])
	}
	if creator["id"] != "ind" {
		t.Fatalf("populated creator id = %v, want ind", creator["id"])
	}
}

func TestListJobsSearchFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)
	createJob(t, env, "ind", "AI Research Lead")
	createJob(t, env, "ind", "Backend Engineer")
	createJob(t, env, "ind", "ai policy analyst")

	rec := env.do(t, http.MethodGet, "/api/industry/jobs?search=ai", "ind", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeEnvelope(t, rec)["count"]; got != float64(2) {
		t.Fatalf("count = %v, want 2 case-insensitive matches", got)
	}
}

func TestListJobsInvalidSearchPattern(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)

	rec := env.do(t, http.MethodGet, "/api/industry/jobs?search=(", "ind", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed pattern", rec.Code)
	}
}

func TestListJobsMine(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)
	env.seedUser(t, "other", models.RoleIndustry)
	createJob(t, env, "ind", "Mine")
	createJob(t, env, "other", "Theirs")

	rec := env.do(t, http.MethodGet, "/api/industry/jobs?mine=true", "ind", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["count"] != float64(1) {
		t.Fatalf("count = %v, want 1", body["count"])
	}
	item := body["data"].([]any)[0].(map[string]any)
	if item["title"] != "Mine" {
		t.Fatalf("title = %v, want Mine", item["title"])
	}
}

func TestGetJobNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)

	rec := env.do(t, http.MethodGet, "/api/industry/jobs/missing", "ind", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateJobOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", models.RoleIndustry)
	env.seedUser(t, "other", models.RoleIndustry)
	env.seedUser(t, "boss", models.RoleAdmin)
	id := createJob(t, env, "owner", "Original")

	update := map[string]any{"title": "Updated", "description": "still here"}

	if rec := env.do(t, http.MethodPut, "/api/industry/jobs/"+id, "other", update); rec.Code != http.StatusForbidden {
		t.Fatalf("non-creator update: status = %d, want 403", rec.Code)
	}

	rec := env.do(t, http.MethodPut, "/api/industry/jobs/"+id, "owner", update)
	if rec.Code != http.StatusOK {
		t.Fatalf("creator update: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["title"] != "Updated" {
		t.Fatalf("title = %v, want Updated", data["title"])
	}
	if data["createdBy"] != "owner" {
		t.Fatalf("createdBy = %v, ownership must not move", data["createdBy"])
	}

	if rec := env.do(t, http.MethodPut, "/api/industry/jobs/"+id, "boss", update); rec.Code != http.StatusOK {
		t.Fatalf("admin update: status = %d, want 200", rec.Code)
	}
}

func TestUpdateJobCannotMoveOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", models.RoleIndustry)
	id := createJob(t, env, "owner", "Original")

	rec := env.do(t, http.MethodPut, "/api/industry/jobs/"+id, "owner", map[string]any{
		"title":       "Still mine",
		"description": "d",
		"createdBy":   "attacker",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["createdBy"] != "owner" {
		t.Fatalf("createdBy = %v, want owner", data["createdBy"])
	}
}

func TestDeleteJobOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", models.RoleIndustry)
	env.seedUser(t, "other", models.RoleIndustry)
	env.seedUser(t, "boss", models.RoleAdmin)

	first := createJob(t, env, "owner", "First")
	second := createJob(t, env, "owner", "Second")

	if rec := env.do(t, http.MethodDelete, "/api/industry/jobs/"+first, "other", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("non-creator delete: status = %d, want 403", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/industry/jobs/"+first, "owner", nil); rec.Code != http.StatusOK {
		t.Fatalf("creator delete: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/industry/jobs/"+second, "boss", nil); rec.Code != http.StatusOK {
		t.Fatalf("admin delete: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/industry/jobs/"+second, "owner", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: status = %d, want 404", rec.Code)
	}
}

func TestInquiryCreateIsPublic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/inquiries", "", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"sector":  "University Sector",
		"message": "How do I join?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 without a token (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["status"] != "pending" {
		t.Fatalf("status = %v, want pending", data["status"])
	}
}

func TestIndustryStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)
	createJob(t, env, "ind", "One")
	createJob(t, env, "ind", "Two")

	research := &models.Research{Title: "R", Description: "d", FundingAmount: 50000}
	if err := env.repos.Research.Save(context.Background(), research); err != nil {
		t.Fatalf("seed research: %v", err)
	}
	challenge := &models.Challenge{Title: "C", Description: "d", PrizeAmount: 10000}
	if err := env.repos.Challenges.Save(context.Background(), challenge); err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/industry/stats", "ind", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["jobs"] != float64(2) {
		t.Fatalf("jobs = %v, want 2", data["jobs"])
	}
	if data["totalFunding"] != float64(60000) {
		t.Fatalf("totalFunding = %v, want 60000", data["totalFunding"])
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ind", models.RoleIndustry)

	rec := env.do(t, http.MethodGet, "/api/admin/users", "ind", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for non-admin", rec.Code)
	}
}

func TestAdminVerifyUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", models.RoleAdmin)

	pending := &models.User{
		Email:   "new@example.com",
		Role:    models.RoleUniversity,
		Profile: models.Profile{Name: "New"},
	}
	pending.SetID("new")
	if err := env.repos.Users.Save(context.Background(), pending); err != nil {
		t.Fatalf("seed pending user: %v", err)
	}

	rec := env.do(t, http.MethodPut, "/api/admin/users/new/verify", "boss", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["isVerified"] != true {
		t.Fatalf("isVerified = %v, want true", data["isVerified"])
	}

	rec = env.do(t, http.MethodPut, "/api/admin/users/new/verify", "boss", map[string]any{"isVerified": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke: status = %d, want 200", rec.Code)
	}
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["isVerified"] != false {
		t.Fatalf("isVerified = %v, want false after revoke", data["isVerified"])
	}
}

func TestAdminCannotDeleteAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", models.RoleAdmin)
	env.seedUser(t, "boss2", models.RoleAdmin)
	env.seedUser(t, "uni", models.RoleUniversity)

	if rec := env.do(t, http.MethodDelete, "/api/admin/users/boss2", "boss", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("delete admin: status = %d, want 403", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/admin/users/uni", "boss", nil); rec.Code != http.StatusOK {
		t.Fatalf("delete regular user: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/admin/users/ghost", "boss", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing user: status = %d, want 404", rec.Code)
	}
}

func TestAdminInquiryWorkflow(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", models.RoleAdmin)

	inquiry := &models.Inquiry{
		Name:    "Visitor",
		Email:   "v@example.com",
		Sector:  models.SectorOther,
		Message: "hello",
		Status:  models.InquiryPending,
	}
	if err := env.repos.Inquiries.Save(context.Background(), inquiry); err != nil {
		t.Fatalf("seed inquiry: %v", err)
	}

	rec := env.do(t, http.MethodPut, "/api/admin/inquiries/"+inquiry.GetID()+"/status", "boss",
		map[string]any{"status": "reviewed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status update: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["status"] != "reviewed" {
		t.Fatalf("status = %v, want reviewed", data["status"])
	}

	rec = env.do(t, http.MethodPut, "/api/admin/inquiries/"+inquiry.GetID()+"/status", "boss",
		map[string]any{"status": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: status = %d, want 400", rec.Code)
	}

	if rec := env.do(t, http.MethodDelete, "/api/admin/inquiries/"+inquiry.GetID(), "boss", nil); rec.Code != http.StatusOK {
		t.Fatalf("delete inquiry: status = %d, want 200", rec.Code)
	}
}

func TestAdminContentRegistry(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", models.RoleAdmin)
	env.seedUser(t, "ind", models.RoleIndustry)
	id := createJob(t, env, "ind", "Moderated")

	rec := env.do(t, http.MethodGet, "/api/admin/content?type=jobs", "boss", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("content list: status = %d, want 200", rec.Code)
	}
	if got := decodeEnvelope(t, rec)["count"]; got != float64(1) {
		t.Fatalf("count = %v, want 1", got)
	}

	if rec := env.do(t, http.MethodGet, "/api/admin/content?type=nonsense", "boss", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: status = %d, want 400", rec.Code)
	}

	if rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/content/%s?type=jobs", id), "boss", nil); rec.Code != http.StatusOK {
		t.Fatalf("content delete: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/industry/jobs/"+id, "ind", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted job still present: status = %d, want 404", rec.Code)
	}
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", models.RoleAdmin)
	env.seedUser(t, "ind", models.RoleIndustry)
	createJob(t, env, "ind", "Counted")

	rec := env.do(t, http.MethodGet, "/api/admin/stats", "boss", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	users := data["users"].(map[string]any)
	if users["total"] != float64(2) {
		t.Fatalf("users.total = %v, want 2", users["total"])
	}
	content := data["content"].(map[string]any)
	if content["jobs"] != float64(1) {
		t.Fatalf("content.jobs = %v, want 1", content["jobs"])
	}
}

func TestNoRouteEnvelope(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
}
