package models

import "gorm.io/gorm"

type Bus struct {
	gorm.Model
	RegistrationNumber string `json:"registration_number" gorm:"uniqueIndex;not null"`
	Capacity           int    `json:"capacity" gorm:"not null"`
	// One bus per conductor; nullable so unassigned buses can coexist.
	ConductorID *uint      `json:"conductor_id" gorm:"uniqueIndex"`
	Conductor   *Conductor `json:"conductor,omitempty" gorm:"foreignKey:ConductorID"`

	Trips []Trip `json:"trips,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
