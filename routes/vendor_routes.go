package routes

import (
	"github.com/Govind-619/TurfSphere/controllers"
	"github.com/Govind-619/TurfSphere/middleware"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/gin-gonic/gin"
)

// initVendorRoutes registers the turf partner routes
func initVendorRoutes(router *gin.RouterGroup, svc *services.Services) {
	vendor := router.Group("/vendor")
	vendor.Use(middleware.AuthMiddleware(svc), middleware.RequireRole(models.RoleVendor))
	{
		vendor.GET("/dashboard", controllers.VendorDashboard)

		vendor.GET("/turfs", controllers.VendorListTurfs)
		vendor.POST("/turfs/create", controllers.VendorCreateTurf)
		vendor.POST("/grounds", controllers.VendorAddGround)

		vendor.GET("/bookings", controllers.VendorListBookings)
		vendor.POST("/bookings/update", controllers.VendorUpdateBooking)

		vendor.GET("/slots", controllers.VendorListSlots)
		vendor.POST("/slots/create", controllers.VendorCreateSlots)

		vendor.GET("/discounts", controllers.VendorListDiscounts)
		vendor.POST("/discounts/create", controllers.VendorCreateDiscount)
	}
}
