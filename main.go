package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/config"
	"github.com/courseland/backend/database"
	"github.com/courseland/backend/handlers"
	"github.com/courseland/backend/natsserver"
	"github.com/courseland/backend/services"
	"github.com/courseland/backend/validate"
)

func main() {
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Start embedded NATS server for the catalog event stream
	natsServer, err := natsserver.New(natsserver.Config{Port: cfg.NATSPort})
	if err != nil {
		log.Fatalf("❌ Failed to start NATS server: %v", err)
	}
	defer natsServer.Shutdown()

	eventHub := services.NewEventHub(natsServer.Conn())
	go eventHub.Run()

	tokens := auth.NewTokenService(cfg.JWTKey)

	// Setup Gin router
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	validate.Setup()

	router := gin.Default()

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	if cfg.ClientURL != "" {
		corsConfig.AllowOrigins = []string{cfg.ClientURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(apperr.Middleware(cfg.Production()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	handlers.RegisterRoutes(router, db, tokens, eventHub)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
