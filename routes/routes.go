package routes

import (
	"document-portal-api/controllers"
	"document-portal-api/middleware"
	"document-portal-api/models"

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

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Document Portal API is running",
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

			// Common lookups
			protected.GET("/departments", controllers.GetDepartments)

			// Documents
			documents := protected.Group("/documents")
			{
				documents.POST("/upload", controllers.UploadDocument)
				documents.GET("", controllers.GetDocuments)
				documents.GET("/:id", controllers.GetDocument)
				documents.GET("/:id/download", controllers.DownloadDocument)
				documents.POST("/:id/versions", controllers.UploadDocumentVersion)
				documents.PUT("/:id/description", controllers.UpdateDocumentDescription)
				documents.PUT("/:id/folder", controllers.MoveDocument)

				// Workflow
				documents.POST("/:id/actions/:action", controllers.ExecuteWorkflowAction)
				documents.GET("/:id/history", controllers.GetDocumentHistory)
			}
			protected.POST("/documents/bulk-action", controllers.ExecuteBulkWorkflowAction)

			// Folders
			folders := protected.Group("/folders")
			{
				folders.GET("", controllers.GetFolderTree)
				folders.POST("", controllers.CreateFolder)
				folders.PUT("/:id", controllers.UpdateFolder)
				folders.PUT("/:id/parent", controllers.MoveFolder)
				folders.DELETE("/:id", controllers.DeleteFolder)
				folders.GET("/:id/breadcrumbs", controllers.GetFolderBreadcrumbs)
			}

			// Meeting rooms
			rooms := protected.Group("/meeting-rooms")
			{
				rooms.GET("", controllers.GetMeetingRooms)
				rooms.GET("/:id/bookings", controllers.GetRoomBookings)
				rooms.POST("/:id/bookings", controllers.CreateRoomBooking)
				rooms.DELETE("/bookings/:booking_id", controllers.CancelRoomBooking)

				// Only admin can manage rooms
				rooms.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateMeetingRoom)
				rooms.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateMeetingRoom)
			}

			// Phone directory
			extensions := protected.Group("/extensions")
			{
				extensions.GET("", controllers.GetPhoneExtensions)
				extensions.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreatePhoneExtension)
				extensions.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdatePhoneExtension)
				extensions.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeletePhoneExtension)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/departments", controllers.GetDepartmentSummary)
				dashboard.GET("/activity", controllers.GetRecentActivity)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.AdminListUsers)
				admin.POST("/users", controllers.AdminCreateUser)
				admin.PUT("/users/:id", controllers.AdminUpdateUser)
				admin.PUT("/users/:id/password", controllers.AdminResetPassword)
				admin.DELETE("/users/:id", controllers.AdminDeactivateUser)

				admin.POST("/departments", controllers.AdminCreateDepartment)
				admin.PUT("/departments/:id", controllers.AdminUpdateDepartment)
				admin.DELETE("/departments/:id", controllers.AdminDeleteDepartment)
			}
		}
	}
}
