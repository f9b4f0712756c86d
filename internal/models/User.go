package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	RoleID   *uint  `json:"role_id"`
	Role     *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID"`

	// Actor-specific relations; at most one of these is set.
	Passenger *Passenger `json:"passenger,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Conductor *Conductor `json:"conductor,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// RoleName returns the linked role name or "" when no role is assigned.
func (u User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
