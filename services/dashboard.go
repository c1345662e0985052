package services

import (
	"context"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

const weekDays = 7

type TodayStats struct {
	Bookings     int64 `json:"bookings"`
	RevenuePaise int64 `json:"revenue_paise"`
	NewUsers     int64 `json:"new_users"`
	NewVendors   int64 `json:"new_vendors"`
}

type RevenueStats struct {
	TotalPaise  int64   `json:"total_paise"`
	TotalRupees float64 `json:"total_rupees"`
}

// AdminSummary is the KPI block at the top of the admin dashboard.
type AdminSummary struct {
	TotalUsers    int64        `json:"total_users"`
	TotalVendors  int64        `json:"total_vendors"`
	TotalTurfs    int64        `json:"total_turfs"`
	TotalBookings int64        `json:"total_bookings"`
	Today         TodayStats   `json:"today"`
	Revenue       RevenueStats `json:"revenue"`
}

// WeeklyReport holds the trailing seven days, oldest first, ending today.
type WeeklyReport struct {
	Labels       []string `json:"labels"`
	Dates        []string `json:"dates"`
	Bookings     []int64  `json:"bookings"`
	RevenuePaise []int64  `json:"revenue_paise"`
}

type Stat struct {
	Title string      `json:"title"`
	Value interface{} `json:"value"`
	Icon  string      `json:"icon"`
}

// VendorDashboard is the vendor home screen.
type VendorDashboard struct {
	Stats   []Stat        `json:"stats"`
	Coaches []interface{} `json:"coaches"`
	Reviews []interface{} `json:"reviews"`
}

// counter runs a sequence of counts and keeps the first error.
type counter struct {
	err error
}

func (c *counter) count(q *gorm.DB, dst *int64) {
	if c.err != nil {
		return
	}
	c.err = q.Count(dst).Error
}

func (c *counter) sum(q *gorm.DB, dst *int64) {
	if c.err != nil {
		return
	}
	c.err = q.Select("COALESCE(SUM(amount), 0)").Scan(dst).Error
}

// AdminSummary counts platform totals and today's activity. Revenue only
// includes successful payments. The counts are separate queries and may be
// slightly out of step with each other under concurrent writes.
func (s *Services) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	db := s.DB.WithContext(ctx)
	_, start := s.today()
	from, to := start.UTC(), start.AddDate(0, 0, 1).UTC()

	var out AdminSummary
	c := &counter{}
	c.count(db.Model(&models.User{}), &out.TotalUsers)
	c.count(db.Model(&models.User{}).Where("role = ?", models.RoleVendor), &out.TotalVendors)
	c.count(db.Model(&models.Turf{}), &out.TotalTurfs)
	c.count(db.Model(&models.Booking{}), &out.TotalBookings)

	c.count(db.Model(&models.Booking{}).Where("created_at >= ? AND created_at < ?", from, to), &out.Today.Bookings)
	c.count(db.Model(&models.User{}).Where("created_at >= ? AND created_at < ?", from, to), &out.Today.NewUsers)
	c.count(db.Model(&models.User{}).Where("role = ? AND created_at >= ? AND created_at < ?", models.RoleVendor, from, to), &out.Today.NewVendors)

	c.sum(db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusSuccess), &out.Revenue.TotalPaise)
	c.sum(db.Model(&models.Payment{}).Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentStatusSuccess, from, to), &out.Today.RevenuePaise)
	if c.err != nil {
		return nil, utils.InternalError("Failed to get dashboard data", c.err)
	}

	out.Revenue.TotalRupees = utils.PaiseToRupees(out.Revenue.TotalPaise)
	return &out, nil
}

// AdminWeekly buckets bookings and successful revenue by local calendar day
// over the last seven days, filling days without data with zero.
func (s *Services) AdminWeekly(ctx context.Context) (*WeeklyReport, error) {
	_, todayStart := s.today()
	first := todayStart.AddDate(0, 0, -(weekDays - 1))
	from, to := first.UTC(), todayStart.AddDate(0, 0, 1).UTC()

	report := &WeeklyReport{
		Labels:       make([]string, weekDays),
		Dates:        make([]string, weekDays),
		Bookings:     make([]int64, weekDays),
		RevenuePaise: make([]int64, weekDays),
	}
	index := make(map[string]int, weekDays)
	for i := 0; i < weekDays; i++ {
		d := first.AddDate(0, 0, i)
		report.Labels[i] = d.Format("Mon")
		report.Dates[i] = d.Format(utils.DateLayout)
		index[report.Dates[i]] = i
	}

	db := s.DB.WithContext(ctx)

	var bookingTimes []time.Time
	if err := db.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &bookingTimes).Error; err != nil {
		return nil, utils.InternalError("Failed to get weekly bookings", err)
	}
	for _, t := range bookingTimes {
		if i, ok := index[t.In(s.Loc).Format(utils.DateLayout)]; ok {
			report.Bookings[i]++
		}
	}

	var payments []models.Payment
	if err := db.Select("amount", "created_at").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentStatusSuccess, from, to).
		Find(&payments).Error; err != nil {
		return nil, utils.InternalError("Failed to get weekly revenue", err)
	}
	for _, p := range payments {
		if i, ok := index[p.CreatedAt.In(s.Loc).Format(utils.DateLayout)]; ok {
			report.RevenuePaise[i] += p.Amount
		}
	}
	return report, nil
}

// VendorDashboard summarises the turfs owned by actor.
func (s *Services) VendorDashboard(ctx context.Context, actor *models.User) (*VendorDashboard, error) {
	db := s.DB.WithContext(ctx)
	today, _ := s.today()

	ownedTurfs := db.Model(&models.Turf{}).Select("id").Where("owner_id = ?", actor.ID)
	vendorBookings := func() *gorm.DB {
		return db.Model(&models.Booking{}).
			Joins("JOIN carts ON carts.id = bookings.cart_id").
			Where("carts.turf_id IN (?)", ownedTurfs)
	}

	var turfCount, todays, upcoming, pending, earnings int64
	c := &counter{}
	c.count(db.Model(&models.Turf{}).Where("owner_id = ?", actor.ID), &turfCount)
	c.count(vendorBookings().Where("carts.date = ?", today), &todays)
	c.count(vendorBookings().Where("carts.date > ?", today), &upcoming)
	c.count(vendorBookings().Where("bookings.vendor_status = ?", models.VendorStatusPending), &pending)
	c.sum(db.Model(&models.Payment{}).
		Where("status = ? AND booking_id IN (?)", models.PaymentStatusSuccess, vendorBookings().Select("bookings.id")),
		&earnings)
	if c.err != nil {
		return nil, utils.InternalError("Failed to get dashboard data", c.err)
	}

	return &VendorDashboard{
		Stats: []Stat{
			{Title: "Total Turfs Owned", Value: turfCount, Icon: "🏠"},
			{Title: "Today’s Bookings", Value: todays, Icon: "📅"},
			{Title: "Upcoming Bookings", Value: upcoming, Icon: "🗓️"},
			{Title: "Total Earnings", Value: utils.PaiseToRupees(earnings), Icon: "💲"},
			{Title: "Pending Approvals", Value: pending, Icon: "⏳"},
		},
		Coaches: []interface{}{},
		Reviews: []interface{}{},
	}, nil
}
