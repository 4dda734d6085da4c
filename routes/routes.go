package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learninghub/config"
	"learninghub/handlers"
	"learninghub/middleware"
)

// Setup builds the gin engine with middleware and the full API route table
func Setup(cfg *config.Config, h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))

	// Every endpoint accepts cross-origin requests from any source; the
	// frontends are served separately.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		supported := supportedMethods(r.Routes(), c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"message": "Method " + c.Request.Method + " is not supported for this endpoint. Supported methods: [" + strings.Join(supported, ", ") + "]",
		})
	})

	// Uploaded images and avatars are served straight from disk
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	api.GET("/test", h.Test)
	api.GET("/health", h.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/student/login", h.StudentLogin)
		auth.POST("/prof/login", h.ProfessorLogin)
		auth.POST("/admin/login", h.AdminLogin)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/profile", h.GetProfile)
		admin.PUT("/profile", h.UpdateProfile)
		admin.PUT("/change-password", h.ChangePassword)
		admin.POST("/upload-profile-picture", h.UploadProfilePicture)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.PUT("/users/:id/password", h.AdminResetPassword)

		admin.GET("/courses", h.ListCourses)
		admin.POST("/courses", h.CreateCourse)
		admin.PUT("/courses/:id", h.UpdateCourse)
		admin.DELETE("/courses/:id", h.DeleteCourse)

		admin.GET("/subjects", h.ListSubjects)
		admin.POST("/subjects", h.CreateSubject)
		admin.GET("/subjects/:code", h.GetSubject)
		admin.PUT("/subjects/:code", h.UpdateSubject)
		admin.DELETE("/subjects/:code", h.DeleteSubject)

		admin.GET("/notifications", h.ListNotifications)
		admin.GET("/notifications/unread-count", h.UnreadCount)
		admin.POST("/notifications/mark-read/:id", h.MarkNotificationRead)
		admin.POST("/notifications/mark-all-read", h.MarkAllNotificationsRead)

		admin.GET("/logs", h.GetLogs)
		admin.GET("/stats", h.GetStats)
	}

	return r
}

// supportedMethods lists the methods registered for a request path, treating
// :param segments as wildcards
func supportedMethods(routes gin.RoutesInfo, path string) []string {
	var methods []string
	for _, route := range routes {
		if pathMatches(route.Path, path) {
			methods = append(methods, route.Method)
		}
	}
	return methods
}

func pathMatches(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, p := range patternParts {
		if strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		if p != pathParts[i] {
			return false
		}
	}
	return true
}
