package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"resume-builder/internal/repository"
)

// UserHandler mantiene dependencias para los endpoints del usuario autenticado.
type UserHandler struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserHandler(logger *zap.Logger, users repository.UserRepository) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// Me maneja GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("get current user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateMe maneja PUT /api/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
		return
	}

	var req struct {
		Name     string `json:"name" binding:"omitempty,min=3,max=100"`
		Username string `json:"username" binding:"omitempty,min=3,max=50"`
		Avatar   string `json:"avatar" binding:"omitempty,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logger.Error("get current user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = strings.ToLower(strings.ReplaceAll(username, " ", ""))
	}
	if avatar := strings.TrimSpace(req.Avatar); avatar != "" {
		user.Avatar = avatar
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
}
