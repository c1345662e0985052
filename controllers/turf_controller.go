package controllers

import (
	"strconv"

	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// ListTurfs returns approved turfs, optionally filtered by ?location=.
func ListTurfs(c *gin.Context) {
	p := utils.NewPagination(c)
	turfs, total, err := svc.ListTurfs(c.Request.Context(), services.TurfFilter{
		Location: c.Query("location"),
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	p.SetTotal(total)
	utils.SuccessWithPagination(c, "Turfs retrieved successfully", turfs, p)
}

// GetTurf returns an approved turf with its grounds.
func GetTurf(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	turf, err := svc.GetTurf(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Turf retrieved successfully", turf)
}

// TurfGames lists the grounds of a turf with slot counts.
func TurfGames(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	games, err := svc.TurfGames(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Games retrieved successfully", results(games))
}

// NearbyTurfs finds approved turfs around ?lat=&lng=, within ?radius_km=.
func NearbyTurfs(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.BadRequest(c, "lat and lng are required", nil)
		return
	}
	radius := 0.0
	if raw := c.Query("radius_km"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequest(c, "Invalid radius_km", nil)
			return
		}
		radius = r
	}

	turfs, err := svc.NearbyTurfs(c.Request.Context(), lat, lng, radius)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Nearby turfs retrieved successfully", results(turfs))
}

// GroundAvailability lists the free slots of a ground for ?date=.
func GroundAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	avail, err := svc.GroundAvailability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Availability retrieved successfully", avail)
}
