package services

import (
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

// reserveSlot flips the slot to booked only if nobody changed it since it was
// read. Two customers racing for one slot both reach this update; the version
// check lets exactly one of them win.
func reserveSlot(tx *gorm.DB, slot *models.Slot) error {
	res := tx.Model(&models.Slot{}).
		Where("id = ? AND is_booked = ? AND version = ?", slot.ID, false, slot.Version).
		UpdateColumns(map[string]interface{}{
			"is_booked": true,
			"version":   gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return utils.InternalError("Failed to reserve slot", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ConflictError("Slot is already booked", nil)
	}
	slot.IsBooked = true
	slot.Version++
	return nil
}

// releaseSlot frees a slot held by a booking that has been cancelled.
func releaseSlot(tx *gorm.DB, slotID uint) error {
	err := tx.Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", slotID, true).
		UpdateColumns(map[string]interface{}{
			"is_booked": false,
			"version":   gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return utils.InternalError("Failed to release slot", err)
	}
	return nil
}
