package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/repository"
	"resume-builder/internal/service"
)

// authFailedMessage es identico para email desconocido y password incorrecto,
// para no revelar si un email esta registrado.
const authFailedMessage = "Auth failed, email or password is wrong"

// AuthHandler mantiene dependencias para los endpoints de autenticacion.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	jwtServ  *service.JWTService
}

// NewAuthHandler crea una instancia de AuthHandler con las dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		jwtServ:  jwtServ,
	}
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=3,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=4,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	user, err := h.authServ.Signup(c.Request.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists with that email"})
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"isAdmin": user.IsAdmin,
	})
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=4,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindingErrorMessage(err)})
		return
	}

	user, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": authFailedMessage})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many login attempts, try again later"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	token, err := h.jwtServ.Issue(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"jwtToken": token,
		"_id":      user.ID,
		"name":     user.Name,
		"username": user.Username,
		"email":    user.Email,
		"avatar":   user.Avatar,
		"isAdmin":  user.IsAdmin,
	})
}

// GoogleSignIn maneja POST /api/auth/google-sign-in.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Avatar   string `json:"avatar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid google sign-in request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	user, created, err := h.authServ.GoogleSignIn(c.Request.Context(), service.GoogleSignInInput{
		Email:    req.Email,
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.logger.Error("google sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	token, err := h.jwtServ.Issue(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	message := "Login Successful!"
	if created {
		message = "New user created successfully!"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    sanitizedUserWithToken(user, token),
		"message": message,
	})
}

// sanitizedUserWithToken arma el payload del usuario sin el hash de password.
func sanitizedUserWithToken(user domain.User, token string) gin.H {
	return gin.H{
		"_id":      user.ID,
		"name":     user.Name,
		"username": user.Username,
		"email":    user.Email,
		"avatar":   user.Avatar,
		"isAdmin":  user.IsAdmin,
		"token":    token,
	}
}
