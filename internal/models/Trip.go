package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip binds a bus, route and conductor to a time window. The weather
// snapshot is best-effort enrichment and may be absent.
type Trip struct {
	gorm.Model
	BusID       uint      `json:"bus_id" gorm:"not null"`
	Bus         Bus       `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	RouteID     uint      `json:"route_id" gorm:"not null"`
	Route       Route     `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	ConductorID uint      `json:"conductor_id" gorm:"not null"`
	Conductor   Conductor `json:"conductor,omitempty" gorm:"foreignKey:ConductorID"`

	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	Weather  *Weather  `json:"weather,omitempty" gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
