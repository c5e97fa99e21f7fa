package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminapi "rally-gateway/internal/api/admin"
	authapi "rally-gateway/internal/api/auth"
	"rally-gateway/internal/api/moderation"
	"rally-gateway/internal/api/posts"
	"rally-gateway/internal/api/profile"
	"rally-gateway/internal/api/rallies"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/session"
	"rally-gateway/internal/upstream"
)

type Handlers struct {
	Auth       *authapi.Handler
	Rallies    *rallies.Handler
	Posts      *posts.Handler
	Moderation *moderation.Handler
	Admin      *adminapi.Handler
	Profile    *profile.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers, store *session.Store, api *upstream.Client, secret []byte) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every API route resolves the viewer; none of them require it.
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ResolveViewer(store, api, secret))

	auth := v1.Group("/auth")
	auth.Use(middleware.SanitizeInput())
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)
	auth.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	auth.GET("/reset-password/info", h.Auth.ResetPasswordInfo)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// Gating sites: read-only views that substitute placeholders on denial.
	views := v1.Group("/views")
	views.GET("/rallies", h.Rallies.Index)
	views.GET("/rallies/:id", h.Rallies.Detail)
	views.GET("/posts/:id", h.Posts.Detail)
	views.GET("/profile", h.Profile.Show)
	views.GET("/profile/:id", h.Profile.Show)

	sanitized := v1.Group("/")
	sanitized.Use(middleware.SanitizeInput())
	sanitized.POST("/rallies", h.Rallies.Create)
	sanitized.PUT("/rallies/:id", h.Rallies.Update)
	sanitized.POST("/posts/:id/comments", h.Posts.CreateComment)
	sanitized.PUT("/profile", h.Profile.Update)

	v1.DELETE("/rallies/:id", h.Rallies.Delete)
	v1.POST("/rallies/:id/posts", h.Posts.Publish)
	v1.POST("/posts/:id/vote", h.Posts.Vote)
	v1.DELETE("/posts/:id", h.Posts.Delete)
	v1.GET("/posts/:id/comments", h.Posts.ListComments)
	v1.DELETE("/comments/:id", h.Posts.DeleteComment)

	mod := v1.Group("/moderation")
	mod.Use(middleware.RequireModerator())
	mod.GET("/rallies/pending", h.Moderation.PendingRallies)
	mod.GET("/posts/pending", h.Moderation.PendingPosts)
	mod.POST("/rallies/:id/approve", h.Moderation.ApproveRally)
	mod.POST("/posts/:id/approve", h.Moderation.ApprovePost)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireModerator(), middleware.SanitizeInput())
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:id", h.Admin.UpdateUser)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
}
