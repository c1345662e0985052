package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleUserActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.svc.ToggleUserActive(ctx, f.admin, f.customer.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	var stored models.User
	require.NoError(t, f.svc.DB.First(&stored, f.customer.ID).Error)
	assert.False(t, stored.IsActive)

	got, err = f.svc.ToggleUserActive(ctx, f.admin, f.customer.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = f.svc.ToggleUserActive(ctx, f.admin, f.admin.ID)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.svc.ToggleUserActive(ctx, f.admin, 9999)
	assertStatus(t, err, http.StatusNotFound)
	_, err = f.svc.ToggleUserActive(ctx, f.vendor, f.customer.ID)
	assertStatus(t, err, http.StatusForbidden)
}

func TestListUsersAndVendors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	utils.CreateTestUser(t, f.svc.DB, "turfking", models.RoleVendor)

	users, err := f.svc.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	vendors, err := f.svc.ListVendors(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	for _, v := range vendors {
		assert.Equal(t, models.RoleVendor, v.Role)
		assert.False(t, v.DateJoined.IsZero())
	}

	_, err = f.svc.ListUsers(ctx, f.customer)
	assertStatus(t, err, http.StatusForbidden)
	_, err = f.svc.ListVendors(ctx, nil)
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestAdminTurfsAndApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := utils.CreateTestTurf(t, f.svc.DB, f.vendor, false)

	rows, err := f.svc.AdminTurfs(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, pending.Turf.ID, rows[0].ID)
	assert.False(t, rows[0].IsApproved)
	assert.Equal(t, "arena", rows[0].Owner.Username)

	res, err := f.svc.SetTurfApproval(ctx, f.admin, pending.Turf.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Turf approved", res.Message)
	_, err = f.svc.GetTurf(ctx, pending.Turf.ID)
	require.NoError(t, err)

	res, err = f.svc.SetTurfApproval(ctx, f.admin, pending.Turf.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Turf rejected", res.Message)
	assert.False(t, res.IsApproved)
	_, err = f.svc.GetTurf(ctx, pending.Turf.ID)
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.SetTurfApproval(ctx, f.admin, 9999, true)
	assertStatus(t, err, http.StatusNotFound)
	_, err = f.svc.SetTurfApproval(ctx, f.vendor, pending.Turf.ID, true)
	assertStatus(t, err, http.StatusForbidden)
}
