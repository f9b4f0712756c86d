package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// PaymentService records settlements against bookings. Status has no
// transition rules: it is caller-supplied within the allowed set.
type PaymentService struct {
	DB *gorm.DB
}

type PaymentInput struct {
	BookingID uint    `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Status    string  `json:"status"`
}

func validStatus(status string) bool {
	switch status {
	case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
		return true
	}
	return false
}

func (s PaymentService) Record(caller access.Identity, input PaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.Status == "" {
		input.Status = models.PaymentPending
	}
	if !validStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, input.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("booking")
			}
			return err
		}

		payment = models.Payment{
			BookingID:   booking.ID,
			Booking:     booking,
			Amount:      input.Amount,
			Status:      input.Status,
			PaymentDate: time.Now(),
		}
		if d := access.Authorize(caller, access.ActionCreate, &payment); !d.Allowed {
			return domain.Forbidden(d.Reason)
		}
		return tx.Omit(clause.Associations).Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s PaymentService) List(caller access.Identity) ([]models.Payment, error) {
	payments := []models.Payment{}
	if !caller.IsAdmin() && caller.PassengerID == 0 {
		return payments, nil
	}
	q := s.DB.Preload("Booking")
	if !caller.IsAdmin() {
		q = q.Where("booking_id IN (?)",
			s.DB.Model(&models.Booking{}).Select("id").Where("passenger_id = ?", caller.PassengerID))
	}
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s PaymentService) Get(caller access.Identity, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Preload("Booking").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("payment")
		}
		return nil, err
	}
	if !caller.IsAdmin() && payment.OwnerPassengerID() != caller.PassengerID {
		return nil, domain.NotFound("payment")
	}
	return &payment, nil
}

type PaymentPatch struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
}

func (s PaymentService) Update(caller access.Identity, id uint, patch PaymentPatch) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Booking").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("payment")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &payment); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, domain.ErrInvalidAmount
		}
		payment.Amount = *patch.Amount
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			return nil, domain.ErrInvalidStatus
		}
		payment.Status = *patch.Status
	}
	if err := s.DB.Omit(clause.Associations).Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s PaymentService) Delete(caller access.Identity, id uint) error {
	var payment models.Payment
	if err := s.DB.Preload("Booking").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("payment")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &payment); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&payment).Error
}
