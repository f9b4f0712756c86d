package services

import (
	"errors"

	"gorm.io/gorm"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// EnsureRoles seeds the fixed role set. Called once at startup and
// safe to call again: existing rows are left untouched.
func EnsureRoles(db *gorm.DB) error {
	seeds := []models.Role{
		{Name: models.RoleAdmin, Description: "full access to all resources"},
		{Name: models.RolePassenger, Description: "books trips and manages own tickets and payments"},
		{Name: models.RoleConductor, Description: "operates trips assigned to them"},
	}
	for _, seed := range seeds {
		// Match on name only: descriptions are admin-editable and must
		// not make the lookup miss and re-insert a seeded role.
		var role models.Role
		err := db.Where(models.Role{Name: seed.Name}).
			Attrs(models.Role{Description: seed.Description}).
			FirstOrCreate(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}

type RoleService struct {
	DB *gorm.DB
}

func (s RoleService) List(caller access.Identity) ([]models.Role, error) {
	if d := access.Authorize(caller, access.ActionList, &models.Role{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var roles []models.Role
	if err := s.DB.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s RoleService) Get(caller access.Identity, id uint) (*models.Role, error) {
	if d := access.Authorize(caller, access.ActionGet, &models.Role{}); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	var role models.Role
	if err := s.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("role")
		}
		return nil, err
	}
	return &role, nil
}

func (s RoleService) Create(caller access.Identity, name, description string) (*models.Role, error) {
	role := models.Role{Name: name, Description: description}
	if d := access.Authorize(caller, access.ActionCreate, &role); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if err := s.DB.Create(&role).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("role", "role name already exists"))
	}
	return &role, nil
}

type RolePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s RoleService) Update(caller access.Identity, id uint, patch RolePatch) (*models.Role, error) {
	var role models.Role
	if err := s.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("role")
		}
		return nil, err
	}
	if d := access.Authorize(caller, access.ActionUpdate, &role); !d.Allowed {
		return nil, domain.Forbidden(d.Reason)
	}
	if patch.Name != nil {
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
	if err := s.DB.Save(&role).Error; err != nil {
		return nil, translateUnique(err, domain.DuplicateKey("role", "role name already exists"))
	}
	return &role, nil
}

func (s RoleService) Delete(caller access.Identity, id uint) error {
	var role models.Role
	if err := s.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("role")
		}
		return err
	}
	if d := access.Authorize(caller, access.ActionDelete, &role); !d.Allowed {
		return domain.Forbidden(d.Reason)
	}
	return s.DB.Delete(&role).Error
}
