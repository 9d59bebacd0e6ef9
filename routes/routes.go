package routes

import (
	"SlowDown/controllers"
	"SlowDown/middlewares"
	"SlowDown/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, jwtSecret []byte, users repositories.UserRepository) {
	api := r.Group("/api")

	api.GET("/health", controllers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/google", controllers.GoogleSignIn)
		auth.GET("/me", middlewares.AuthMiddleware(jwtSecret, users), controllers.Me)
		auth.POST("/logout", middlewares.AuthMiddleware(jwtSecret, users), controllers.Logout)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(jwtSecret, users))
	{
		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("", middlewares.RequireAdmin(), controllers.ListUsers)
			usersGroup.POST("", middlewares.RequireAdmin(), controllers.CreateUser)
			usersGroup.GET("/:id", controllers.GetUser)
			usersGroup.PATCH("/:id", controllers.UpdateUser)
			usersGroup.GET("/:id/stats", controllers.UserStats)
		}

		usage := protected.Group("/usage")
		{
			usage.POST("/sync", controllers.SyncUsage)
			usage.POST("/add", controllers.AddUsage)
			usage.GET("/today", controllers.TodayUsage)
			usage.GET("/history", controllers.UsageHistory)
		}

		requests := protected.Group("/time-requests")
		{
			requests.POST("", controllers.CreateTimeRequest)
			requests.GET("", controllers.ListTimeRequests)
			requests.GET("/pending", controllers.PendingTimeRequest)
			requests.PATCH("/:id", middlewares.RequireAdmin(), controllers.ProcessTimeRequest)
			requests.DELETE("/:id", controllers.CancelTimeRequest)
		}
	}
}
