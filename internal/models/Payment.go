package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment records a settlement attempt against a booking. Status is
// caller-supplied; there is no enforced transition between statuses.
type Payment struct {
	gorm.Model
	BookingID uint    `json:"booking_id" gorm:"not null"`
	Booking   Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`

	Amount      float64   `json:"amount" gorm:"not null"`
	Status      string    `json:"status" gorm:"default:'pending'"`
	PaymentDate time.Time `json:"payment_date"`
}
