package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User represents any account on the platform. Vendors and admins are users
// with an elevated role.
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"index" json:"email"`
	Mobile      string    `gorm:"uniqueIndex;not null" json:"mobile"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `gorm:"not null;default:customer;index" json:"role"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// UserBrief is the compact user shape embedded in list responses.
type UserBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username, Email: u.Email}
}
