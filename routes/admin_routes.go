package routes

import (
	"github.com/Govind-619/TurfSphere/controllers"
	"github.com/Govind-619/TurfSphere/middleware"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the admin panel routes
func initAdminRoutes(router *gin.RouterGroup, svc *services.Services) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/send-otp", controllers.AdminSendOTP)
		admin.POST("/verify-otp", controllers.AdminVerifyOTP)
		admin.POST("/login", controllers.AdminLogin)

		// Protected admin routes
		protected := admin.Group("")
		protected.Use(middleware.AuthMiddleware(svc), middleware.AdminMiddleware())
		{
			protected.GET("/dashboard/summary", controllers.AdminDashboardSummary)
			protected.GET("/dashboard/weekly", controllers.AdminDashboardWeekly)

			protected.GET("/users", controllers.AdminListUsers)
			anyWrite(protected, "/users/:id/toggle-active", controllers.AdminToggleUserActive)

			protected.GET("/turfs", controllers.AdminListTurfs)
			anyWrite(protected, "/turfs/:id/approve", controllers.AdminApproveTurf)
			anyWrite(protected, "/turfs/:id/reject", controllers.AdminRejectTurf)

			protected.GET("/bookings", controllers.AdminListBookings)
			protected.GET("/bookings/export", controllers.AdminExportBookings)
			anyWrite(protected, "/bookings/:id/cancel", controllers.AdminCancelBooking)

			protected.GET("/payments", controllers.AdminListPayments)

			protected.GET("/vendors", controllers.AdminListVendors)
			protected.POST("/vendors/:id/approve", controllers.AdminReviewVendor)
			protected.POST("/vendors/:id/reject", controllers.AdminReviewVendor)
		}
	}
}
