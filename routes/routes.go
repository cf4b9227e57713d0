package routes

import (
	"performance-management-api/controllers"
	"performance-management-api/middleware"
	"performance-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Performance Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.POST("/register", middleware.RequireRole(models.RoleAdmin), controllers.Register)

			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Users
			users := protected.Group("/users")
			{
				users.GET("/reviewers", controllers.GetReviewers)
				users.GET("/employees", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.GetTeamEmployees)
				users.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetUsers)
				users.PUT("/:id/active", middleware.RequireRole(models.RoleAdmin), controllers.SetUserActive)
			}

			// Goals
			goals := protected.Group("/goals")
			{
				goals.POST("", controllers.CreateGoal)
				goals.GET("", controllers.GetGoals)
				goals.GET("/all", controllers.GetAllGoals)
				goals.POST("/submit-all", controllers.SubmitAllGoals)

				// Review queue; reviewers and admins only
				goals.GET("/review", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.GetGoalsForReview)
				goals.POST("/:id/review", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.ReviewGoal)

				goals.GET("/:id", controllers.GetGoal)
				goals.PUT("/:id", controllers.UpdateGoal)
				goals.DELETE("/:id", controllers.DeleteGoal)

				// Progress tracking
				goals.POST("/:id/progress", controllers.UpdateGoalProgress)
				goals.GET("/:id/progress", controllers.GetGoalProgressHistory)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.POST("", controllers.CreateReview)
				reviews.GET("", controllers.GetReviews)
				reviews.GET("/summary", controllers.GetReviewSummary)
				reviews.GET("/comparison/:goal_id", controllers.GetReviewComparison)
				reviews.GET("/:id", controllers.GetReview)
				reviews.PUT("/:id", controllers.UpdateReview)
				reviews.DELETE("/:id", controllers.DeleteReview)
			}

			// Skills
			skills := protected.Group("/skills")
			{
				skills.POST("", controllers.CreateSkill)
				skills.GET("", controllers.GetSkills)
				skills.PUT("/:id", controllers.UpdateSkill)
				skills.DELETE("/:id", controllers.DeleteSkill)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread-count", controllers.GetUnreadNotificationCount)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
