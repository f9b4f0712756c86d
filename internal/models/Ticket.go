package models

import (
	"time"

	"gorm.io/gorm"
)

// Ticket assigns a seat to a booking. TripID is denormalized from the
// booking so the per-trip seat uniqueness index can live on this table:
// two bookings on the same trip must never share a seat.
type Ticket struct {
	gorm.Model
	BookingID  uint    `json:"booking_id" gorm:"not null"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	TripID     uint    `json:"trip_id" gorm:"not null;uniqueIndex:idx_trip_seat"`
	SeatNumber string  `json:"seat_number" gorm:"not null;uniqueIndex:idx_trip_seat"`

	Serial   string    `json:"serial" gorm:"uniqueIndex"`
	IssuedAt time.Time `json:"issued_at"`
}
