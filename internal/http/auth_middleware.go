package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"resume-builder/internal/repository"
	"resume-builder/internal/service"
)

const authClaimsKey = "auth_claims"

// RequireAuth valida el token Bearer y guarda los claims en el contexto.
func RequireAuth(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwtSvc.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin carga el usuario de los claims y exige el flag de admin.
// Se monta despues de RequireAuth: un token invalido o expirado nunca
// llega al chequeo de privilegios.
func RequireAdmin(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token, authorization denied"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied, not an admin"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			}
			c.Abort()
			return
		}
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied, not an admin"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAuthClaims obtiene los claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
