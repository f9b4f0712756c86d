package models

import "gorm.io/gorm"

// Conductor profiles are created by admins for existing users.
type Conductor struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User          User   `json:"-" gorm:"foreignKey:UserID"`
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	EmployeeNo    string `json:"employee_no" gorm:"uniqueIndex;not null"`
}
