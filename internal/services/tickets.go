package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// TicketService issues seats against bookings. Seat uniqueness is
// scoped to the trip, not the booking: two bookings on the same trip
// must not share a seat. The check runs in the issuing transaction and
// the (trip, seat) unique index catches anything that races past it.
type TicketService struct {
	DB *gorm.DB
}

type TicketInput struct {
	BookingID  uint   `json:"booking_id" binding:"required"`
	SeatNumber string `json:"seat_number" binding:"required"`
}

func (s TicketService) Issue(caller access.Identity, input TicketInput) (*models.Ticket, error) {
	seat := strings.TrimSpace(input.SeatNumber)
	if seat == "" {
		return nil, domain.ValidationError{Field: "seat_number", Msg: "must not be empty"}
	}

	var ticket models.Ticket
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, input.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("booking")
			}
			return err
		}

		ticket = models.Ticket{
			BookingID:  booking.ID,
			Booking:    booking,
			TripID:     booking.TripID,
			SeatNumber: seat,
			Serial:     uuid.NewString(),
			IssuedAt:   time.Now(),
		}
		if d := access.Authorize(caller, access.ActionCreate, &ticket); !d.Allowed {
			return domain.Forbidden(d.Reason)
		}

		var count int64
		err := tx.Model(&models.Ticket{}).
			Where("trip_id = ? AND seat_number = ?", booking.TripID, seat).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrSeatTaken
		}
		if err := tx.Omit(clause.Associations).Create(&ticket).Error; err != nil {
			return translateUnique(err, domain.ErrSeatTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List scoping: admins see everything, conductors see tickets on trips
// they operate, passengers see tickets on their own bookings, anyone
// else gets an empty set.
func (s TicketService) List(caller access.Identity) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	if !caller.IsAdmin() && caller.ConductorID == 0 && caller.PassengerID == 0 {
		return tickets, nil
	}
	q := s.DB.Preload("Booking")
	switch {
	case caller.IsAdmin():
	case caller.IsConductor() && caller.ConductorID != 0:
		q = q.Where("trip_id IN (?)",
			s.DB.Model(&models.Trip{}).Select("id").Where("conductor_id = ?", caller.ConductorID))
	default:
		q = q.Where("booking_id IN (?)",
			s.DB.Model(&models.Booking{}).Select("id").Where("passenger_id = ?", caller.PassengerID))
	}
	if err := q.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s TicketService) Get(caller access.Identity, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.DB.Preload("Booking").First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("ticket")
		}
		return nil, err
	}
	if !s.visible(caller, &ticket) {
		return nil, domain.NotFound("ticket")
	}
	return &ticket, nil
}

func (s TicketService) visible(caller access.Identity, ticket *models.Ticket) bool {
	switch {
	case caller.IsAdmin():
		return true
	case caller.IsConductor() && caller.ConductorID != 0:
		var trip models.Trip
		if err := s.DB.First(&trip, ticket.TripID).Error; err != nil {
			return false
		}
		return trip.ConductorID == caller.ConductorID
	default:
		return ticket.OwnerPassengerID() == caller.PassengerID && caller.PassengerID != 0
	}
}

type TicketPatch struct {
	SeatNumber *string `json:"seat_number"`
}

// Update moves a ticket to another seat on the same trip. The seat
// rule is re-checked against the target inside the transaction.
func (s TicketService) Update(caller access.Identity, id uint, patch TicketPatch) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.DB.Preload("Booking").First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("ticket")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &ticket); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.SeatNumber == nil {
		return &ticket, nil
	}
	seat := strings.TrimSpace(*patch.SeatNumber)
	if seat == "" {
		return nil, domain.ValidationError{Field: "seat_number", Msg: "must not be empty"}
	}
	if seat == ticket.SeatNumber {
		return &ticket, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Ticket{}).
			Where("trip_id = ? AND seat_number = ?", ticket.TripID, seat).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrSeatTaken
		}
		ticket.SeatNumber = seat
		if err := tx.Omit(clause.Associations).Save(&ticket).Error; err != nil {
			return translateUnique(err, domain.ErrSeatTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s TicketService) Delete(caller access.Identity, id uint) error {
	var ticket models.Ticket
	if err := s.DB.Preload("Booking").First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("ticket")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &ticket); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&ticket).Error
}
