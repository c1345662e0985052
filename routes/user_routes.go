package routes

import (
	"github.com/Govind-619/TurfSphere/controllers"
	"github.com/Govind-619/TurfSphere/middleware"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers auth, catalog, booking and payment routes
func initUserRoutes(router *gin.RouterGroup, svc *services.Services) {
	// Public routes
	router.POST("/send-otp", controllers.SendOTP)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/signup", controllers.Signup)
	router.POST("/login", controllers.Login)
	router.POST("/reset-password", controllers.ResetPassword)

	router.GET("/turfs", controllers.ListTurfs)
	router.GET("/turfs/nearby", controllers.NearbyTurfs)
	router.GET("/turfs/:id", controllers.GetTurf)
	router.GET("/turfs/:id/games", controllers.TurfGames)
	router.GET("/grounds/:id/availability", controllers.GroundAvailability)

	// Protected routes
	user := router.Group("")
	user.Use(middleware.AuthMiddleware(svc))
	{
		user.GET("/home", controllers.Home)
		user.POST("/logout", controllers.Logout)

		user.POST("/cart/add", controllers.AddToCart)
		user.POST("/booking/confirm", controllers.ConfirmBooking)
		user.GET("/my-bookings", controllers.MyBookings)
		user.GET("/my-bookings/:id", controllers.GetMyBooking)
		user.GET("/my-bookings/:id/receipt", controllers.DownloadReceipt)

		user.POST("/payment/create-order", controllers.CreatePaymentOrder)
		user.POST("/payment/verify", controllers.VerifyPayment)
	}
}
