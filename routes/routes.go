package routes

import (
	"faculty-activity-api/controllers"
	"faculty-activity-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Faculty Activity API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Approval orchestration
			approval := protected.Group("/approval")
			{
				approval.GET("/pending", controllers.GetPendingApprovals)
				approval.GET("/my-submissions", controllers.GetMySubmissions)
				approval.GET("/:type/:id", controllers.GetSubmissionDetail)
				approval.POST("/:type/:id/approve", controllers.ApproveSubmission)
				approval.POST("/:type/:id/reject", controllers.RejectSubmission)
			}

			// Research activities
			research := protected.Group("/research-activities")
			{
				research.GET("", controllers.GetMyResearchActivities)
				research.GET("/:id", controllers.GetResearchActivity)
				research.POST("", controllers.CreateResearchActivity)
				research.DELETE("/:id", controllers.DeleteResearchActivity)
			}

			// Teaching
			courses := protected.Group("/courses")
			{
				courses.GET("", controllers.GetMyCourses)
				courses.GET("/:id", controllers.GetCourse)
				courses.POST("", controllers.CreateCourse)
				courses.DELETE("/:id", controllers.DeleteCourse)
			}

			// Authorships
			authorships := protected.Group("/authorships")
			{
				authorships.GET("", controllers.GetMyAuthorships)
				authorships.GET("/:id", controllers.GetAuthorship)
				authorships.POST("", controllers.CreateAuthorship)
				authorships.DELETE("/:id", controllers.DeleteAuthorship)
			}

			// Extension activities
			extensions := protected.Group("/extension-activities")
			{
				extensions.GET("", controllers.GetMyExtensionActivities)
				extensions.GET("/:id", controllers.GetExtensionActivity)
				extensions.POST("", controllers.CreateExtensionActivity)
				extensions.DELETE("/:id", controllers.DeleteExtensionActivity)
			}

			// Supporting documents
			documents := protected.Group("/documents")
			{
				documents.POST("/:type/:id", controllers.UploadSupportingDocument)
				documents.GET("/:type/:id", controllers.DownloadSupportingDocument)
			}

			// Records dashboard
			protected.GET("/summary", controllers.GetSummary)

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", controllers.GetUsers)
			}
		}
	}
}
