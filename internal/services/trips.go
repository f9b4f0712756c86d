package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
	"lightpath/internal/weather"
)

// TripService schedules trips. Weather is an optional collaborator: a
// nil client simply skips snapshots.
type TripService struct {
	DB      *gorm.DB
	Weather *weather.Client
}

type TripInput struct {
	BusID         uint      `json:"bus_id" binding:"required"`
	RouteID       uint      `json:"route_id" binding:"required"`
	ConductorID   uint      `json:"conductor_id"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	WeatherCity   string    `json:"weather_city"`
}

func (s TripService) Create(caller access.Identity, input TripInput) (*models.Trip, error) {
	// A conductor always schedules for themself, whatever the payload
	// said. Admins may name any conductor.
	if caller.IsConductor() {
		input.ConductorID = caller.ConductorID
	}

	trip := models.Trip{
		BusID:         input.BusID,
		RouteID:       input.RouteID,
		ConductorID:   input.ConductorID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if d := access.Authorize(caller, access.ActionCreate, &trip); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if !trip.ArrivalTime.After(trip.DepartureTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Bus{}, trip.BusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("bus")
			}
			return err
		}
		if err := tx.First(&models.Route{}, trip.RouteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("route")
			}
			return err
		}
		if err := tx.First(&models.Conductor{}, trip.ConductorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("conductor")
			}
			return err
		}
		return tx.Create(&trip).Error
	})
	if err != nil {
		return nil, err
	}

	s.attachWeather(&trip, input.WeatherCity)
	return &trip, nil
}

// attachWeather snapshots current conditions for the trip. Lookup
// failures are logged and swallowed: enrichment never blocks creation.
func (s TripService) attachWeather(trip *models.Trip, city string) {
	if s.Weather == nil || city == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := s.Weather.Current(ctx, city)
	if err != nil {
		logrus.WithError(err).WithField("trip_id", trip.ID).Warn("weather lookup failed; trip created without snapshot")
		return
	}
	record := models.Weather{
		TripID:       trip.ID,
		City:         snap.City,
		TemperatureC: snap.TemperatureC,
		FeelsLikeC:   snap.FeelsLikeC,
		Humidity:     snap.Humidity,
		Description:  snap.Description,
		WindSpeed:    snap.WindSpeed,
		FetchedAt:    time.Now(),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		logrus.WithError(err).WithField("trip_id", trip.ID).Warn("could not store weather snapshot")
		return
	}
	trip.Weather = &record
}

type TripPatch struct {
	BusID         *uint      `json:"bus_id"`
	RouteID       *uint      `json:"route_id"`
	ConductorID   *uint      `json:"conductor_id"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

func (s TripService) Update(caller access.Identity, id uint, patch TripPatch) (*models.Trip, error) {
	var trip models.Trip
	if err := s.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("trip")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &trip); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.BusID != nil {
		trip.BusID = *patch.BusID
	}
	if patch.RouteID != nil {
		trip.RouteID = *patch.RouteID
	}
	// Reassignment to another conductor is admin-only; a conductor's
	// supplied value is ignored rather than rejected, matching create.
	if patch.ConductorID != nil && caller.IsAdmin() {
		trip.ConductorID = *patch.ConductorID
	}
	if patch.DepartureTime != nil {
		trip.DepartureTime = *patch.DepartureTime
	}
	if patch.ArrivalTime != nil {
		trip.ArrivalTime = *patch.ArrivalTime
	}
	if !trip.ArrivalTime.After(trip.DepartureTime) {
		return nil, domain.ErrInvalidTimeRange
	}
	if err := s.DB.Save(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// TripFilter narrows a listing. Nil fields match everything.
type TripFilter struct {
	BusID       *uint
	RouteID     *uint
	ConductorID *uint
}

// List returns trips matching the filter: read fan-out is unrestricted
// for any authenticated caller, no ownership filter.
func (s TripService) List(caller access.Identity, filter TripFilter) ([]models.Trip, error) {
	if d := access.Authorize(caller, access.ActionList, &models.Trip{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	q := s.DB.Preload("Bus").Preload("Route").Preload("Conductor").Preload("Weather")
	if filter.BusID != nil {
		q = q.Where("bus_id = ?", *filter.BusID)
	}
	if filter.RouteID != nil {
		q = q.Where("route_id = ?", *filter.RouteID)
	}
	if filter.ConductorID != nil {
		q = q.Where("conductor_id = ?", *filter.ConductorID)
	}
	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (s TripService) Get(caller access.Identity, id uint) (*models.Trip, error) {
	if d := access.Authorize(caller, access.ActionGet, &models.Trip{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var trip models.Trip
	err := s.DB.Preload("Bus").Preload("Route").Preload("Conductor").Preload("Weather").First(&trip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("trip")
		}
		return nil, err
	}
	return &trip, nil
}

func (s TripService) Delete(caller access.Identity, id uint) error {
	var trip models.Trip
	if err := s.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("trip")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &trip); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&trip).Error
}
