package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

const maxGroundsPerTurf = 20

// TurfInput is the partner form a vendor submits to list a turf.
type TurfInput struct {
	TurfName  string   `json:"turfName"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Price     int64    `json:"price"`
	TurfCount int      `json:"turfCount"`
}

// SlotEntry is one requested slot in a batch. Entries missing either time
// are skipped.
type SlotEntry struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SlotBatchResult reports how much of a slot batch was stored.
type SlotBatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// CreateTurf stores an unapproved turf owned by actor with turfCount grounds
// named "Ground 1".."Ground N".
func (s *Services) CreateTurf(ctx context.Context, actor *models.User, in TurfInput) (*models.Turf, error) {
	in.TurfName = strings.TrimSpace(in.TurfName)
	in.Location = strings.TrimSpace(in.Location)
	switch {
	case in.TurfName == "":
		return nil, utils.BadRequestError("turfName is required", nil)
	case in.Location == "":
		return nil, utils.BadRequestError("location is required", nil)
	case in.Price <= 0:
		return nil, utils.BadRequestError("price must be a positive amount in paise", nil)
	case (in.Latitude == nil) != (in.Longitude == nil):
		return nil, utils.BadRequestError("latitude and longitude must be sent together", nil)
	}
	if in.TurfCount <= 0 {
		in.TurfCount = 1
	}
	if in.TurfCount > maxGroundsPerTurf {
		return nil, utils.BadRequestError(fmt.Sprintf("turfCount must be at most %d", maxGroundsPerTurf), nil)
	}

	turf := models.Turf{
		Name:         in.TurfName,
		Location:     in.Location,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		PricePerHour: in.Price,
		OwnerID:      actor.ID,
		IsApproved:   false,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&turf).Error; err != nil {
			return err
		}
		for i := 1; i <= in.TurfCount; i++ {
			g := models.Ground{TurfID: turf.ID, Name: fmt.Sprintf("Ground %d", i)}
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
			turf.Grounds = append(turf.Grounds, g)
		}
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to create turf", err)
	}
	utils.LogInfo("Vendor %d created turf %d with %d grounds", actor.ID, turf.ID, in.TurfCount)
	return &turf, nil
}

// VendorTurfs lists every turf owned by actor, approved or not.
func (s *Services) VendorTurfs(ctx context.Context, actor *models.User) ([]models.Turf, error) {
	var turfs []models.Turf
	if err := s.DB.WithContext(ctx).Preload("Grounds").
		Where("owner_id = ?", actor.ID).Order("id desc").Find(&turfs).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch turfs", err)
	}
	return turfs, nil
}

// AddGround adds a ground to a turf the actor owns.
func (s *Services) AddGround(ctx context.Context, actor *models.User, turfID uint, name string) (*models.Ground, error) {
	if turfID == 0 {
		return nil, utils.BadRequestError("turf_id is required", nil)
	}
	db := s.DB.WithContext(ctx)
	var turf models.Turf
	if err := db.First(&turf, turfID).Error; err != nil {
		return nil, notFoundOr(err, "Turf not found")
	}
	if err := Authorize(actor, ActionManageTurf, TurfResource(&turf)); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		var n int64
		if err := db.Model(&models.Ground{}).Where("turf_id = ?", turf.ID).Count(&n).Error; err != nil {
			return nil, utils.InternalError("Failed to count grounds", err)
		}
		name = fmt.Sprintf("Ground %d", n+1)
	}
	ground := models.Ground{TurfID: turf.ID, Name: name}
	if err := db.Create(&ground).Error; err != nil {
		return nil, utils.InternalError("Failed to create ground", err)
	}
	return &ground, nil
}

// ownedGround loads a ground and checks the actor may manage its slots.
func (s *Services) ownedGround(ctx context.Context, actor *models.User, groundID uint) (*models.Ground, error) {
	var ground models.Ground
	if err := s.DB.WithContext(ctx).Preload("Turf").First(&ground, groundID).Error; err != nil {
		return nil, notFoundOr(err, "Ground not found")
	}
	if err := Authorize(actor, ActionManageSlots, TurfResource(&ground.Turf)); err != nil {
		return nil, err
	}
	return &ground, nil
}

// VendorSlots lists all slots of an owned ground ordered by start time.
func (s *Services) VendorSlots(ctx context.Context, actor *models.User, groundID uint) ([]models.Slot, error) {
	if groundID == 0 {
		return nil, utils.BadRequestError("ground_id required", nil)
	}
	ground, err := s.ownedGround(ctx, actor, groundID)
	if err != nil {
		return nil, err
	}
	var slots []models.Slot
	if err := s.DB.WithContext(ctx).Where("ground_id = ?", ground.ID).
		Order("start_time").Find(&slots).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch slots", err)
	}
	return slots, nil
}

// CreateSlots stores every well-formed entry of a batch. Bad entries are
// skipped without failing the rest.
func (s *Services) CreateSlots(ctx context.Context, actor *models.User, groundID uint, entries []SlotEntry) (*SlotBatchResult, error) {
	if groundID == 0 || len(entries) == 0 {
		return nil, utils.BadRequestError("ground_id and slots[] required", nil)
	}
	ground, err := s.ownedGround(ctx, actor, groundID)
	if err != nil {
		return nil, err
	}

	result := &SlotBatchResult{}
	db := s.DB.WithContext(ctx)
	for _, e := range entries {
		st, et := strings.TrimSpace(e.StartTime), strings.TrimSpace(e.EndTime)
		if st == "" || et == "" || !utils.IsClockTime(st) || !utils.IsClockTime(et) || et <= st {
			result.Skipped++
			continue
		}
		slot := models.Slot{GroundID: ground.ID, StartTime: st, EndTime: et}
		if err := db.Create(&slot).Error; err != nil {
			utils.LogError("Failed to create slot %s-%s on ground %d: %v", st, et, ground.ID, err)
			result.Skipped++
			continue
		}
		result.Created++
	}
	utils.LogInfo("Vendor %d created %d slots on ground %d (%d skipped)", actor.ID, result.Created, ground.ID, result.Skipped)
	return result, nil
}
