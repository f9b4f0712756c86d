package models

import "gorm.io/gorm"

// Role names seeded at startup. Users reference roles by FK so admins
// can manage descriptions without touching user rows.
const (
	RoleAdmin     = "admin"
	RolePassenger = "passenger"
	RoleConductor = "conductor"
)

type Role struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Description string `json:"description"`
}
