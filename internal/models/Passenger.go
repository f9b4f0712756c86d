package models

import "gorm.io/gorm"

// Passenger is the booking-facing profile of a user with the passenger
// role. Username is the public display handle; it defaults to the
// account email at registration so uniqueness holds from day one.
type Passenger struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User          User   `json:"-" gorm:"foreignKey:UserID"`
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	Username      string `json:"username" gorm:"uniqueIndex"`
}
