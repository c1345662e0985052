package controllers

import (
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminListUsers lists every account, newest first.
func AdminListUsers(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	users, err := svc.ListUsers(c.Request.Context(), admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Users retrieved successfully", results(users))
}

// AdminToggleUserActive blocks or unblocks a user.
func AdminToggleUserActive(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	toggled, err := svc.ToggleUserActive(c.Request.Context(), admin, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "User status updated", toggled)
}

// AdminListVendors lists vendor accounts.
func AdminListVendors(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	vendors, err := svc.ListVendors(c.Request.Context(), admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Vendors retrieved successfully", results(vendors))
}

// AdminReviewVendor answers vendor approve and reject. Vendor accounts need
// no separate approval, so both report the module as unavailable.
func AdminReviewVendor(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	utils.NotImplemented(c, "Vendor module not implemented")
}
