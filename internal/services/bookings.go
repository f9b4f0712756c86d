package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// BookingService is the booking ledger. The (passenger, trip) pair is
// checked inside the creation transaction and additionally backed by a
// composite unique index, so two racing requests cannot both land.
type BookingService struct {
	DB *gorm.DB
}

type BookingInput struct {
	PassengerID uint `json:"passenger_id"`
	TripID      uint `json:"trip_id" binding:"required"`
}

func (s BookingService) Create(caller access.Identity, input BookingInput) (*models.Booking, error) {
	// Passengers book for themselves regardless of the supplied id;
	// only admins may book on behalf of another passenger.
	if caller.IsPassenger() {
		input.PassengerID = caller.PassengerID
	}

	booking := models.Booking{
		PassengerID: input.PassengerID,
		TripID:      input.TripID,
		BookingTime: time.Now(),
		Status:      models.BookingConfirmed,
	}
	if d := access.Authorize(caller, access.ActionCreate, &booking); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Trip{}, input.TripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("trip")
			}
			return err
		}
		if err := tx.First(&models.Passenger{}, input.PassengerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("passenger")
			}
			return err
		}
		var count int64
		err := tx.Model(&models.Booking{}).
			Where("passenger_id = ? AND trip_id = ?", input.PassengerID, input.TripID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateBooking
		}
		if err := tx.Create(&booking).Error; err != nil {
			return translateUnique(err, domain.ErrDuplicateBooking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List applies visibility scoping, not authorization: admins see all,
// passengers see their own, any other role gets an empty set.
func (s BookingService) List(caller access.Identity) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if !caller.IsAdmin() && caller.PassengerID == 0 {
		return bookings, nil
	}
	q := s.DB.Preload("Trip").Preload("Passenger")
	if !caller.IsAdmin() {
		q = q.Where("passenger_id = ?", caller.PassengerID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Get hides out-of-scope bookings behind NotFound so existence never
// leaks to non-owners.
func (s BookingService) Get(caller access.Identity, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Trip").Preload("Passenger").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("booking")
		}
		return nil, err
	}
	if !caller.IsAdmin() && booking.PassengerID != caller.PassengerID {
		return nil, domain.NotFound("booking")
	}
	return &booking, nil
}

type BookingPatch struct {
	TripID *uint `json:"trip_id"`
}

// Update can move a booking to another trip; the duplicate rule is
// re-checked against the target. BookingTime is immutable.
func (s BookingService) Update(caller access.Identity, id uint, patch BookingPatch) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("booking")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &booking); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.TripID == nil || *patch.TripID == booking.TripID {
		return &booking, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Trip{}, *patch.TripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("trip")
			}
			return err
		}
		var count int64
		err := tx.Model(&models.Booking{}).
			Where("passenger_id = ? AND trip_id = ?", booking.PassengerID, *patch.TripID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateBooking
		}
		booking.TripID = *patch.TripID
		if err := tx.Save(&booking).Error; err != nil {
			return translateUnique(err, domain.ErrDuplicateBooking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s BookingService) Delete(caller access.Identity, id uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("booking")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &booking); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&booking).Error
}
