package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
)

const (
	earthRadiusKm       = 6371.0
	defaultNearbyRadius = 10.0
)

// TurfFilter narrows the public turf listing.
type TurfFilter struct {
	Location string
	Offset   int
	Limit    int
}

// NearbyTurf is a turf together with its distance from the caller.
type NearbyTurf struct {
	models.Turf
	DistanceKm float64 `json:"distance_km"`
}

// GroundGames summarises a ground for the turf games listing.
type GroundGames struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	TotalSlots     int64  `json:"total_slots"`
	AvailableSlots int64  `json:"available_slots"`
}

// Availability lists the free slots of a ground for a day.
type Availability struct {
	GroundID uint          `json:"ground_id"`
	TurfID   uint          `json:"turf_id"`
	Date     string        `json:"date"`
	Slots    []models.Slot `json:"slots"`
}

// ListTurfs returns approved turfs and the total matching count.
func (s *Services) ListTurfs(ctx context.Context, f TurfFilter) ([]models.Turf, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Turf{}).Where("is_approved = ?", true)
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, utils.InternalError("Failed to count turfs", err)
	}

	var turfs []models.Turf
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Order("id desc").Find(&turfs).Error; err != nil {
		return nil, 0, utils.InternalError("Failed to fetch turfs", err)
	}
	return turfs, total, nil
}

// GetTurf returns an approved turf with its grounds.
func (s *Services) GetTurf(ctx context.Context, id uint) (*models.Turf, error) {
	var turf models.Turf
	err := s.DB.WithContext(ctx).Preload("Grounds").
		Where("is_approved = ?", true).
		First(&turf, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Turf not found")
	}
	return &turf, nil
}

// TurfGames lists the grounds of an approved turf with slot counts.
func (s *Services) TurfGames(ctx context.Context, turfID uint) ([]GroundGames, error) {
	turf, err := s.GetTurf(ctx, turfID)
	if err != nil {
		return nil, err
	}

	out := make([]GroundGames, 0, len(turf.Grounds))
	db := s.DB.WithContext(ctx)
	for _, g := range turf.Grounds {
		gg := GroundGames{ID: g.ID, Name: g.Name}
		if err := db.Model(&models.Slot{}).Where("ground_id = ?", g.ID).Count(&gg.TotalSlots).Error; err != nil {
			return nil, utils.InternalError("Failed to count slots", err)
		}
		if err := db.Model(&models.Slot{}).Where("ground_id = ? AND is_booked = ?", g.ID, false).Count(&gg.AvailableSlots).Error; err != nil {
			return nil, utils.InternalError("Failed to count slots", err)
		}
		out = append(out, gg)
	}
	return out, nil
}

// NearbyTurfs returns approved turfs within radiusKm of (lat, lng), nearest
// first. Turfs without coordinates are never included.
func (s *Services) NearbyTurfs(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyTurf, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, utils.BadRequestError("lat/lng out of range", nil)
	}
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadius
	}

	var turfs []models.Turf
	err := s.DB.WithContext(ctx).
		Where("is_approved = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&turfs).Error
	if err != nil {
		return nil, utils.InternalError("Failed to fetch turfs", err)
	}

	out := make([]NearbyTurf, 0)
	for _, t := range turfs {
		d := HaversineKm(lat, lng, *t.Latitude, *t.Longitude)
		if d <= radiusKm {
			out = append(out, NearbyTurf{Turf: t, DistanceKm: math.Round(d*100) / 100})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// GroundAvailability lists the unbooked slots of a ground. An empty date means
// today.
func (s *Services) GroundAvailability(ctx context.Context, groundID uint, date string) (*Availability, error) {
	if date == "" {
		date, _ = s.today()
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, utils.BadRequestError("date must be YYYY-MM-DD", err)
	}

	db := s.DB.WithContext(ctx)
	var ground models.Ground
	if err := db.Preload("Turf").First(&ground, groundID).Error; err != nil {
		return nil, notFoundOr(err, "Ground not found")
	}
	if !ground.Turf.IsApproved {
		return nil, utils.NotFoundError("Ground not found", nil)
	}

	var slots []models.Slot
	if err := db.Where("ground_id = ? AND is_booked = ?", ground.ID, false).
		Order("start_time").Find(&slots).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch slots", err)
	}
	return &Availability{
		GroundID: ground.ID,
		TurfID:   ground.TurfID,
		Date:     day.Format(utils.DateLayout),
		Slots:    slots,
	}, nil
}

// HomeSummary is the landing payload for a signed-in user.
type HomeSummary struct {
	User          models.UserBrief `json:"user"`
	Role          string           `json:"role"`
	Mobile        string           `json:"mobile"`
	ApprovedTurfs int64            `json:"approved_turfs"`
	Bookings      int64            `json:"bookings"`
}

// Home summarises the actor's account next to the size of the catalog.
func (s *Services) Home(ctx context.Context, actor *models.User) (*HomeSummary, error) {
	db := s.DB.WithContext(ctx)
	out := &HomeSummary{User: actor.Brief(), Role: actor.Role, Mobile: actor.Mobile}
	if err := db.Model(&models.Turf{}).Where("is_approved = ?", true).Count(&out.ApprovedTurfs).Error; err != nil {
		return nil, utils.InternalError("Failed to count turfs", err)
	}
	if err := db.Model(&models.Booking{}).Where("user_id = ?", actor.ID).Count(&out.Bookings).Error; err != nil {
		return nil, utils.InternalError("Failed to count bookings", err)
	}
	return out, nil
}
