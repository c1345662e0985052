package controllers

import (
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminListTurfs lists all turfs with their owners.
func AdminListTurfs(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	turfs, err := svc.AdminTurfs(c.Request.Context(), admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Turfs retrieved successfully", results(turfs))
}

// AdminApproveTurf publishes a turf to the catalog.
func AdminApproveTurf(c *gin.Context) {
	setTurfApproval(c, true)
}

// AdminRejectTurf hides a turf from the catalog.
func AdminRejectTurf(c *gin.Context) {
	setTurfApproval(c, false)
}

func setTurfApproval(c *gin.Context, approved bool) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := svc.SetTurfApproval(c.Request.Context(), admin, id, approved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, result.Message, result)
}
