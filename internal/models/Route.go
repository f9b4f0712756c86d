package models

import "gorm.io/gorm"

// Route represents a service path between two termini.
type Route struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	StartPoint  string `json:"start_point"`
	EndPoint    string `json:"end_point"`
	Description string `json:"description"`

	Trips []Trip `json:"trips,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
