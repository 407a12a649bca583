package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"resume-builder/internal/repository"
)

// AdminHandler mantiene dependencias para los endpoints de moderacion.
// Todas sus rutas se montan detras de RequireAuth + RequireAdmin.
type AdminHandler struct {
	logger  *zap.Logger
	users   repository.UserRepository
	resumes repository.ResumeRepository
}

func NewAdminHandler(logger *zap.Logger, users repository.UserRepository, resumes repository.ResumeRepository) *AdminHandler {
	return &AdminHandler{
		logger:  logger,
		users:   users,
		resumes: resumes,
	}
}

// ListUsers maneja GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// DeleteUser maneja DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

// ToggleAdmin maneja PUT /api/admin/users/:id/toggle-admin.
func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	var req struct {
		IsAdmin *bool `json:"isAdmin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid toggle admin request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	id := c.Param("id")
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := h.users.SetAdmin(c.Request.Context(), id, *req.IsAdmin); err != nil {
		h.logger.Error("set admin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	user.IsAdmin = *req.IsAdmin
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("User admin status updated to %t", *req.IsAdmin),
		"user":    user,
	})
}

// ListResumes maneja GET /api/admin/resumes.
func (h *AdminHandler) ListResumes(c *gin.Context) {
	resumes, err := h.resumes.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list resumes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resumes": resumes})
}

// ToggleResumeVerification maneja PUT /api/admin/resumes/:id/toggle-verification.
func (h *AdminHandler) ToggleResumeVerification(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid toggle verification request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	id := c.Param("id")
	resume, err := h.resumes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Resume not found"})
			return
		}
		h.logger.Error("get resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := h.resumes.SetVerified(c.Request.Context(), id, *req.Verified); err != nil {
		h.logger.Error("set verified failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	resume.Verified = *req.Verified
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Resume verification status updated to %t", *req.Verified),
		"resume":  resume,
	})
}

// DeleteResume maneja DELETE /api/admin/resumes/:id.
func (h *AdminHandler) DeleteResume(c *gin.Context) {
	if err := h.resumes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resume deleted successfully"})
}
