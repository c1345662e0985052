package controllers

import (
	"strconv"

	"github.com/Govind-619/TurfSphere/config"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

var (
	svc *services.Services
	cfg *config.Config
)

// Setup hands the handlers their dependencies. It must run before the router
// serves requests.
func Setup(s *services.Services, c *config.Config) {
	svc = s
	cfg = c
}

// currentUser returns the user AuthMiddleware stored on the context.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return nil, false
	}
	return &user, true
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body and answers 400 when it cannot.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.LogError("Invalid request body on %s: %v", c.Request.URL.Path, err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

// results wraps a listing the way the dashboards expect it.
func results(v interface{}) gin.H {
	return gin.H{"results": v}
}
