package controllers

import (
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminDashboardSummary returns the platform KPIs.
func AdminDashboardSummary(c *gin.Context) {
	summary, err := svc.AdminSummary(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Dashboard summary retrieved successfully", summary)
}

// AdminDashboardWeekly returns bookings and revenue for the last seven days.
func AdminDashboardWeekly(c *gin.Context) {
	report, err := svc.AdminWeekly(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Weekly report retrieved successfully", report)
}
