package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/config"
	"rally-gateway/database"
	adminapi "rally-gateway/internal/api/admin"
	authapi "rally-gateway/internal/api/auth"
	"rally-gateway/internal/api/moderation"
	"rally-gateway/internal/api/posts"
	"rally-gateway/internal/api/profile"
	"rally-gateway/internal/api/rallies"
	routes "rally-gateway/internal/app/http"
	"rally-gateway/internal/domain/session"
	"rally-gateway/internal/upstream"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	log.SetFormatter(&log.JSONFormatter{})

	api := upstream.New(config.UPSTREAM_API_URL, config.UPSTREAM_TIMEOUT)
	sessions := session.NewStore(database.DB)
	secret := []byte(config.SESSION_SECRET)

	handlers := routes.Handlers{
		Auth:       authapi.NewHandler(api, sessions, secret),
		Rallies:    rallies.NewHandler(api),
		Posts:      posts.NewHandler(api, sessions),
		Moderation: moderation.NewHandler(api),
		Admin:      adminapi.NewHandler(api),
		Profile:    profile.NewHandler(api),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, handlers, sessions, api, secret)

	log.WithFields(log.Fields{"port": config.PORT}).Info("rally gateway listening")
	if err := r.Run(":" + config.PORT); err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("unable to start HTTP interface")
	}
}
