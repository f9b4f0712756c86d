package access

import (
	"errors"

	"gorm.io/gorm"

	"lightpath/internal/domain"
	"lightpath/internal/models"
)

// Identity is the resolved caller: role plus the linked profile IDs.
// The zero value is anonymous and denied everywhere.
type Identity struct {
	UserID      uint
	Role        string
	PassengerID uint
	ConductorID uint
}

func (id Identity) Authenticated() bool { return id.UserID != 0 }

func (id Identity) IsAdmin() bool     { return id.Role == models.RoleAdmin }
func (id Identity) IsPassenger() bool { return id.Role == models.RolePassenger }
func (id Identity) IsConductor() bool { return id.Role == models.RoleConductor }

// LoadIdentity resolves the caller from the user id carried in the
// token, preloading role and profiles in one query.
func LoadIdentity(db *gorm.DB, userID uint) (Identity, error) {
	var user models.User
	err := db.Preload("Role").Preload("Passenger").Preload("Conductor").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, domain.UnauthenticatedError{}
		}
		return Identity{}, err
	}

	id := Identity{UserID: user.ID, Role: user.RoleName()}
	if user.Passenger != nil {
		id.PassengerID = user.Passenger.ID
	}
	if user.Conductor != nil {
		id.ConductorID = user.Conductor.ID
	}
	return id, nil
}
