package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/service"
)

func setupAdminRouter(repo *mockUserRepo, resumes *mockResumeRepo, jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(zap.NewNop(), repo, resumes)
	r := gin.New()
	admin := r.Group("/api/admin", RequireAuth(jwtSvc), RequireAdmin(repo))
	admin.GET("/users", h.ListUsers)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.PUT("/users/:id/toggle-admin", h.ToggleAdmin)
	admin.GET("/resumes", h.ListResumes)
	admin.PUT("/resumes/:id/toggle-verification", h.ToggleResumeVerification)
	admin.DELETE("/resumes/:id", h.DeleteResume)
	return r
}

func adminToken(t *testing.T, jwtSvc *service.JWTService, repo *mockUserRepo) string {
	t.Helper()
	admin := domain.User{ID: "admin1", Name: "Admin", Email: "admin@x.com", IsAdmin: true}
	repo.seed(admin)
	token, err := jwtSvc.Issue(admin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return token
}

func TestAdminListUsers_ExcludesPasswordHash(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)
	repo.seed(domain.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", PasswordHash: "$2a$10$secret-hash"})

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodGet, "/api/admin/users", token, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
	body := decodeBody(t, rec)
	users, _ := body["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestAdminToggleAdmin_Success(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)
	repo.seed(domain.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"})

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodPut, "/api/admin/users/u1/toggle-admin", token, map[string]bool{"isAdmin": true})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "User admin status updated to true" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	updated, err := repo.GetByID(context.Background(), "u1")
	if err != nil || !updated.IsAdmin {
		t.Fatalf("expected user to be admin after toggle")
	}
}

func TestAdminToggleAdmin_UnknownUser(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodPut, "/api/admin/users/ghost/toggle-admin", token, map[string]bool{"isAdmin": true})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "User not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAdminToggleAdmin_MissingFlag(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)
	repo.seed(domain.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"})

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodPut, "/api/admin/users/u1/toggle-admin", token, map[string]string{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminDeleteUser_Success(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)
	repo.seed(domain.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"})

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodDelete, "/api/admin/users/u1", token, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := repo.GetByID(context.Background(), "u1"); err == nil {
		t.Fatalf("expected user to be deleted")
	}
}

func TestAdminToggleResumeVerification_Success(t *testing.T) {
	repo := newMockUserRepo()
	resumes := newMockResumeRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)
	resumes.seed(domain.Resume{ID: "r1", UserID: "u1", Title: "CV"})

	r := setupAdminRouter(repo, resumes, jwtSvc)
	rec := performRequestWithHeader(r, http.MethodPut, "/api/admin/resumes/r1/toggle-verification", token, map[string]bool{"verified": true})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Resume verification status updated to true" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	updated, err := resumes.GetByID(context.Background(), "r1")
	if err != nil || !updated.Verified {
		t.Fatalf("expected resume to be verified after toggle")
	}
}

func TestAdminToggleResumeVerification_UnknownResume(t *testing.T) {
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("secret", 24*time.Hour)
	token := adminToken(t, jwtSvc, repo)

	r := setupAdminRouter(repo, newMockResumeRepo(), jwtSvc)
	rec := performRequestWithHeader(r, http.MethodPut, "/api/admin/resumes/ghost/toggle-verification", token, map[string]bool{"verified": true})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
