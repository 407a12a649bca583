package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-builder/internal/repository"
	"resume-builder/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	userH *UserHandler,
	resumeH *ResumeHandler,
	adminH *AdminHandler,
	jwtSvc *service.JWTService,
	users repository.UserRepository,
	clientURL string,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(clientURL), jsonContentTypeMiddleware())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/google-sign-in", authH.GoogleSignIn)

	usersGroup := api.Group("/users", RequireAuth(jwtSvc))
	usersGroup.GET("/me", userH.Me)
	usersGroup.PUT("/me", userH.UpdateMe)

	resumes := api.Group("/resumes", RequireAuth(jwtSvc))
	resumes.POST("", resumeH.Create)
	resumes.GET("", resumeH.List)
	resumes.GET("/:id", resumeH.Get)
	resumes.PUT("/:id", resumeH.Update)
	resumes.DELETE("/:id", resumeH.Delete)

	admin := api.Group("/admin", RequireAuth(jwtSvc), RequireAdmin(users))
	admin.GET("/users", adminH.ListUsers)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.PUT("/users/:id/toggle-admin", adminH.ToggleAdmin)
	admin.GET("/resumes", adminH.ListResumes)
	admin.PUT("/resumes/:id/toggle-verification", adminH.ToggleResumeVerification)
	admin.DELETE("/resumes/:id", adminH.DeleteResume)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita CORS para el origen del cliente configurado
// y para los puertos de desarrollo locales.
func corsMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (origin == clientURL || strings.HasPrefix(origin, "http://localhost:")) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
