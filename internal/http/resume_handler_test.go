package http

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/service"
)

type mockResumeRepo struct {
	resumesByID map[string]domain.Resume
}

func newMockResumeRepo() *mockResumeRepo {
	return &mockResumeRepo{resumesByID: make(map[string]domain.Resume)}
}

func (m *mockResumeRepo) Create(_ context.Context, resume domain.Resume) error {
	m.resumesByID[resume.ID] = resume
	return nil
}

func (m *mockResumeRepo) GetByID(_ context.Context, id string) (domain.Resume, error) {
	resume, ok := m.resumesByID[id]
	if !ok {
		return domain.Resume{}, pgx.ErrNoRows
	}
	return resume, nil
}

func (m *mockResumeRepo) ListByUser(_ context.Context, userID string) ([]domain.Resume, error) {
	var resumes []domain.Resume
	for _, r := range m.resumesByID {
		if r.UserID == userID {
			resumes = append(resumes, r)
		}
	}
	sort.Slice(resumes, func(i, j int) bool { return resumes[i].ID < resumes[j].ID })
	return resumes, nil
}

func (m *mockResumeRepo) ListAll(_ context.Context) ([]domain.Resume, error) {
	var resumes []domain.Resume
	for _, r := range m.resumesByID {
		resumes = append(resumes, r)
	}
	return resumes, nil
}

func (m *mockResumeRepo) Update(_ context.Context, resume domain.Resume) error {
	if _, ok := m.resumesByID[resume.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.resumesByID[resume.ID] = resume
	return nil
}

func (m *mockResumeRepo) SetVerified(_ context.Context, id string, verified bool) error {
	resume, ok := m.resumesByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	resume.Verified = verified
	m.resumesByID[id] = resume
	return nil
}

func (m *mockResumeRepo) Delete(_ context.Context, id string) error {
	delete(m.resumesByID, id)
	return nil
}

func (m *mockResumeRepo) seed(resume domain.Resume) {
	m.resumesByID[resume.ID] = resume
}

func setupResumeRouter(resumes *mockResumeRepo, jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewResumeHandler(zap.NewNop(), resumes)
	r := gin.New()
	group := r.Group("/api/resumes", RequireAuth(jwtSvc))
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	return r
}

func userToken(t *testing.T, jwtSvc *service.JWTService, userID string) string {
	t.Helper()
	token, err := jwtSvc.Issue(domain.User{ID: userID, Email: userID + "@x.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestResumeCreate_Success(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)
	token := userToken(t, jwtSvc, "u1")

	rec := performRequestWithHeader(r, http.MethodPost, "/api/resumes", token, map[string]any{
		"title":    "Backend CV",
		"sections": map[string]any{"skills": []string{"Go", "SQL"}},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	resume, _ := body["resume"].(map[string]any)
	if resume == nil {
		t.Fatalf("expected resume payload")
	}
	if resume["userId"] != "u1" {
		t.Fatalf("expected resume owned by the token user, got %v", resume["userId"])
	}
	if resume["verified"] != false {
		t.Fatalf("expected new resume to be unverified")
	}
}

func TestResumeCreate_RequiresToken(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)

	rec := performRequestWithHeader(r, http.MethodPost, "/api/resumes", "", map[string]any{"title": "CV"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestResumeList_OnlyOwn(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)
	token := userToken(t, jwtSvc, "u1")

	resumes.seed(domain.Resume{ID: "r1", UserID: "u1", Title: "Mine"})
	resumes.seed(domain.Resume{ID: "r2", UserID: "u2", Title: "Theirs"})

	rec := performRequestWithHeader(r, http.MethodGet, "/api/resumes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	list, _ := body["resumes"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected 1 resume, got %d", len(list))
	}
	first, _ := list[0].(map[string]any)
	if first["_id"] != "r1" {
		t.Fatalf("expected only the caller's resume, got %v", first["_id"])
	}
}

func TestResumeGet_ForeignResumeForbidden(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)
	token := userToken(t, jwtSvc, "u1")

	resumes.seed(domain.Resume{ID: "r2", UserID: "u2", Title: "Theirs"})

	rec := performRequestWithHeader(r, http.MethodGet, "/api/resumes/r2", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestResumeUpdate_Success(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)
	token := userToken(t, jwtSvc, "u1")

	resumes.seed(domain.Resume{ID: "r1", UserID: "u1", Title: "Old title"})

	rec := performRequestWithHeader(r, http.MethodPut, "/api/resumes/r1", token, map[string]any{
		"title": "New title",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated, err := resumes.GetByID(context.Background(), "r1")
	if err != nil || updated.Title != "New title" {
		t.Fatalf("expected title to be updated, got %q", updated.Title)
	}
}

func TestResumeDelete_UnknownResume(t *testing.T) {
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	r := setupResumeRouter(resumes, jwtSvc)
	token := userToken(t, jwtSvc, "u1")

	rec := performRequestWithHeader(r, http.MethodDelete, "/api/resumes/ghost", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
