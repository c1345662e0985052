package routes

import (
	"time"

	"github.com/Govind-619/TurfSphere/config"
	"github.com/Govind-619/TurfSphere/controllers"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with every route and the shared middleware.
func SetupRouter(cfg *config.Config, svc *services.Services) *gin.Engine {
	controllers.Setup(svc, cfg)
	utils.RegisterValidators()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(utils.MethodNotAllowed)
	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware(cfg.CORSOrigins))
	router.Use(utils.SecurityHeadersMiddleware(cfg.IsProduction()))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   int((24 * time.Hour).Seconds()),
		Path:     "/",
		Secure:   cfg.IsProduction(),
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("turfsphere", store))

	api := router.Group("/v1")
	{
		initUserRoutes(api, svc)
		initAdminRoutes(api, svc)
		initVendorRoutes(api, svc)
	}

	return router
}

// anyWrite registers h for both POST and PATCH.
func anyWrite(group *gin.RouterGroup, path string, h gin.HandlerFunc) {
	group.POST(path, h)
	group.PATCH(path, h)
}
