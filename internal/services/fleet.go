package services

import (
	"errors"

	"gorm.io/gorm"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// FleetService owns the admin-managed reference data: buses, routes
// and conductor profiles. Reads are open to any authenticated caller;
// the guard rejects non-admin writes.
type FleetService struct {
	DB *gorm.DB
}

type BusInput struct {
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Capacity           int    `json:"capacity" binding:"required"`
	ConductorID        *uint  `json:"conductor_id"`
}

func (s FleetService) CreateBus(caller access.Identity, input BusInput) (*models.Bus, error) {
	bus := models.Bus{
		RegistrationNumber: input.RegistrationNumber,
		Capacity:           input.Capacity,
		ConductorID:        input.ConductorID,
	}
	if d := access.Authorize(caller, access.ActionCreate, &bus); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if bus.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	if bus.ConductorID != nil {
		var conductor models.Conductor
		if err := s.DB.First(&conductor, *bus.ConductorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NotFound("conductor")
			}
			return nil, err
		}
	}
	if err := s.DB.Create(&bus).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("bus", "registration number or conductor already assigned"))
	}
	return &bus, nil
}

type BusPatch struct {
	RegistrationNumber *string `json:"registration_number"`
	Capacity           *int    `json:"capacity"`
	ConductorID        *uint   `json:"conductor_id"`
}

func (s FleetService) UpdateBus(caller access.Identity, id uint, patch BusPatch) (*models.Bus, error) {
	var bus models.Bus
	if err := s.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("bus")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &bus); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.RegistrationNumber != nil {
		bus.RegistrationNumber = *patch.RegistrationNumber
	}
	if patch.Capacity != nil {
		bus.Capacity = *patch.Capacity
	}
	if patch.ConductorID != nil {
		bus.ConductorID = patch.ConductorID
	}
	if bus.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	if err := s.DB.Save(&bus).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("bus", "registration number or conductor already assigned"))
	}
	return &bus, nil
}

func (s FleetService) ListBuses(caller access.Identity) ([]models.Bus, error) {
	if d := access.Authorize(caller, access.ActionList, &models.Bus{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var buses []models.Bus
	if err := s.DB.Preload("Conductor").Find(&buses).Error; err != nil {
		return nil, err
	}
	return buses, nil
}

func (s FleetService) GetBus(caller access.Identity, id uint) (*models.Bus, error) {
	if d := access.Authorize(caller, access.ActionGet, &models.Bus{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var bus models.Bus
	if err := s.DB.Preload("Conductor").First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("bus")
		}
		return nil, err
	}
	return &bus, nil
}

func (s FleetService) DeleteBus(caller access.Identity, id uint) error {
	var bus models.Bus
	if err := s.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("bus")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &bus); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&bus).Error
}

type RouteInput struct {
	Name        string `json:"name" binding:"required"`
	StartPoint  string `json:"start_point"`
	EndPoint    string `json:"end_point"`
	Description string `json:"description"`
}

func (s FleetService) CreateRoute(caller access.Identity, input RouteInput) (*models.Route, error) {
	route := models.Route{
		Name:        input.Name,
		StartPoint:  input.StartPoint,
		EndPoint:    input.EndPoint,
		Description: input.Description,
	}
	if d := access.Authorize(caller, access.ActionCreate, &route); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if err := s.DB.Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

type RoutePatch struct {
	Name        *string `json:"name"`
	StartPoint  *string `json:"start_point"`
	EndPoint    *string `json:"end_point"`
	Description *string `json:"description"`
}

func (s FleetService) UpdateRoute(caller access.Identity, id uint, patch RoutePatch) (*models.Route, error) {
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("route")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &route); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.Name != nil {
		route.Name = *patch.Name
	}
	if patch.StartPoint != nil {
		route.StartPoint = *patch.StartPoint
	}
	if patch.EndPoint != nil {
		route.EndPoint = *patch.EndPoint
	}
	if patch.Description != nil {
		route.Description = *patch.Description
	}
	if err := s.DB.Save(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (s FleetService) ListRoutes(caller access.Identity) ([]models.Route, error) {
	if d := access.Authorize(caller, access.ActionList, &models.Route{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var routes []models.Route
	if err := s.DB.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s FleetService) GetRoute(caller access.Identity, id uint) (*models.Route, error) {
	if d := access.Authorize(caller, access.ActionGet, &models.Route{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("route")
		}
		return nil, err
	}
	return &route, nil
}

func (s FleetService) DeleteRoute(caller access.Identity, id uint) error {
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("route")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &route); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&route).Error
}

type ConductorInput struct {
	UserID        uint   `json:"user_id" binding:"required"`
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	EmployeeNo    string `json:"employee_no" binding:"required"`
}

func (s FleetService) CreateConductor(caller access.Identity, input ConductorInput) (*models.Conductor, error) {
	conductor := models.Conductor{
		UserID:        input.UserID,
		FullName:      input.FullName,
		ContactNumber: input.ContactNumber,
		EmployeeNo:    input.EmployeeNo,
	}
	if d := access.Authorize(caller, access.ActionCreate, &conductor); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var user models.User
	if err := s.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user")
		}
		return nil, err
	}
	if err := s.DB.Create(&conductor).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("conductor", "employee number already in use or user already has a profile"))
	}
	return &conductor, nil
}

type ConductorPatch struct {
	FullName      *string `json:"full_name"`
	ContactNumber *string `json:"contact_number"`
	EmployeeNo    *string `json:"employee_no"`
}

func (s FleetService) UpdateConductor(caller access.Identity, id uint, patch ConductorPatch) (*models.Conductor, error) {
	var conductor models.Conductor
	if err := s.DB.First(&conductor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("conductor")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &conductor); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.FullName != nil {
		conductor.FullName = *patch.FullName
	}
	if patch.ContactNumber != nil {
		conductor.ContactNumber = *patch.ContactNumber
	}
	if patch.EmployeeNo != nil {
		conductor.EmployeeNo = *patch.EmployeeNo
	}
	if err := s.DB.Save(&conductor).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("conductor", "employee number already in use"))
	}
	return &conductor, nil
}

func (s FleetService) ListConductors(caller access.Identity) ([]models.Conductor, error) {
	if d := access.Authorize(caller, access.ActionList, &models.Conductor{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var conductors []models.Conductor
	if err := s.DB.Find(&conductors).Error; err != nil {
		return nil, err
	}
	return conductors, nil
}

func (s FleetService) GetConductor(caller access.Identity, id uint) (*models.Conductor, error) {
	if d := access.Authorize(caller, access.ActionGet, &models.Conductor{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var conductor models.Conductor
	if err := s.DB.First(&conductor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("conductor")
		}
		return nil, err
	}
	return &conductor, nil
}

func (s FleetService) DeleteConductor(caller access.Identity, id uint) error {
	var conductor models.Conductor
	if err := s.DB.First(&conductor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("conductor")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &conductor); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&conductor).Error
}
