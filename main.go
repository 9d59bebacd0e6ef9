package main

import (
	"log"
	"os"

	"SlowDown/config"
	"SlowDown/controllers"
	"SlowDown/logger"
	"SlowDown/repositories/impl"
	"SlowDown/routes"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	zlog := logger.New()

	// Initialize database and Firebase
	config.InitDatabase()
	config.InitFirebase()

	jwtSecret := config.JWTSecret()
	offset := config.TimezoneOffsetHours()

	// Initialize repositories
	userRepo := impl.NewUserRepository(config.DB)
	usageRepo := impl.NewUsageRepository(config.DB)
	requestRepo := impl.NewTimeRequestRepository(config.DB)
	sessionRepo := impl.NewSessionRepository(config.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, config.FirebaseAuth, jwtSecret, config.AdminEmails(), zlog)
	usageService := services.NewUsageService(usageRepo, offset, zlog)
	timeRequestService := services.NewTimeRequestService(requestRepo, zlog)
	userService := services.NewUserService(userRepo, usageRepo, requestRepo, offset, zlog)

	// Set services in controllers
	controllers.SetAuthService(authService)
	controllers.SetUsageService(usageService)
	controllers.SetTimeRequestService(timeRequestService)
	controllers.SetUserService(userService)

	// Initialize Gin router
	r := gin.Default()

	// Register routes
	routes.RegisterRoutes(r, jwtSecret, userRepo)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	zlog.Info().Str("port", port).Msg("starting server")
	r.Run(":" + port)
}
