package models

import (
	"time"

	"gorm.io/gorm"
)

const BookingConfirmed = "confirmed"

// Booking reserves a place for a passenger on a trip. The composite
// unique index backs the one-booking-per-(passenger,trip) rule so a
// storage race cannot slip a duplicate past the in-transaction check.
type Booking struct {
	gorm.Model
	PassengerID uint      `json:"passenger_id" gorm:"not null;uniqueIndex:idx_passenger_trip"`
	Passenger   Passenger `json:"passenger,omitempty" gorm:"foreignKey:PassengerID"`
	TripID      uint      `json:"trip_id" gorm:"not null;uniqueIndex:idx_passenger_trip"`
	Trip        Trip      `json:"trip,omitempty" gorm:"foreignKey:TripID"`

	// Set once at creation, never updated.
	BookingTime time.Time `json:"booking_time"`
	Status      string    `json:"status" gorm:"default:'confirmed'"`

	Tickets  []Ticket  `json:"tickets,omitempty" gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
