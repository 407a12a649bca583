package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/repository"
)

// ResumeHandler mantiene dependencias para los endpoints de curriculums.
type ResumeHandler struct {
	logger  *zap.Logger
	resumes repository.ResumeRepository
}

func NewResumeHandler(logger *zap.Logger, resumes repository.ResumeRepository) *ResumeHandler {
	return &ResumeHandler{
		logger:  logger,
		resumes: resumes,
	}
}

// Create maneja POST /api/resumes.
func (h *ResumeHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
		return
	}

	var req struct {
		Title    string          `json:"title" binding:"required,min=1,max=200"`
		Sections json.RawMessage `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create resume request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	now := time.Now().UTC()
	sections := req.Sections
	if len(sections) == 0 {
		sections = json.RawMessage(`{}`)
	}
	resume := domain.Resume{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		Title:     req.Title,
		Sections:  sections,
		Verified:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.resumes.Create(c.Request.Context(), resume); err != nil {
		h.logger.Error("create resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "resume": resume})
}

// List maneja GET /api/resumes y devuelve solo los curriculums del usuario.
func (h *ResumeHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
		return
	}

	resumes, err := h.resumes.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list resumes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "resumes": resumes})
}

// Get maneja GET /api/resumes/:id.
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resume": resume})
}

// Update maneja PUT /api/resumes/:id.
func (h *ResumeHandler) Update(c *gin.Context) {
	resume, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req struct {
		Title    string          `json:"title" binding:"omitempty,min=1,max=200"`
		Sections json.RawMessage `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update resume request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	if req.Title != "" {
		resume.Title = req.Title
	}
	if len(req.Sections) > 0 {
		resume.Sections = req.Sections
	}
	resume.UpdatedAt = time.Now().UTC()

	if err := h.resumes.Update(c.Request.Context(), resume); err != nil {
		h.logger.Error("update resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "resume": resume})
}

// Delete maneja DELETE /api/resumes/:id.
func (h *ResumeHandler) Delete(c *gin.Context) {
	resume, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.resumes.Delete(c.Request.Context(), resume.ID); err != nil {
		h.logger.Error("delete resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resume deleted successfully"})
}

// loadOwned carga el resume de la ruta y verifica que pertenezca al usuario
// autenticado. Escribe la respuesta de error cuando devuelve ok=false.
func (h *ResumeHandler) loadOwned(c *gin.Context) (domain.Resume, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
		return domain.Resume{}, false
	}

	resume, err := h.resumes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Resume not found"})
			return domain.Resume{}, false
		}
		h.logger.Error("get resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return domain.Resume{}, false
	}

	if resume.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return domain.Resume{}, false
	}
	return resume, true
}
