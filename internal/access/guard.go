package access

import (
	"lightpath/internal/models"
)

type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) read() bool { return a == ActionList || a == ActionGet }

// Decision is the guard verdict. Reason is only set on deny and is
// surfaced to the caller as a 403 body.
type Decision struct {
	Allowed bool
	Reason  string
}

func allowed() Decision           { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Authorize evaluates the rule table: admin bypass, anonymous deny,
// open reads on fleet and trip data, then per-type ownership. First
// match wins. The resource set is closed; an unknown type is denied.
func Authorize(caller Identity, action Action, resource any) Decision {
	if caller.IsAdmin() {
		return allowed()
	}
	if !caller.Authenticated() {
		return deny("authentication required")
	}

	switch res := resource.(type) {
	case *models.Bus, *models.Route, *models.Conductor, *models.Role:
		if action.read() {
			return allowed()
		}
		return deny("fleet data is managed by admins")

	case *models.Trip:
		if action.read() {
			return allowed()
		}
		if caller.IsConductor() && caller.ConductorID != 0 && res.OwnerConductorID() == caller.ConductorID {
			return allowed()
		}
		return deny("trips may only be modified by their assigned conductor")

	case *models.Booking:
		if action == ActionCreate {
			if ownsAsPassenger(caller, res) {
				return allowed()
			}
			return deny("passengers may only create bookings for themselves")
		}
		if ownsAsPassenger(caller, res) {
			return allowed()
		}
		return deny("not the owner of this booking")

	case *models.Ticket:
		return ownedResource(caller, action, res, "ticket", "booking")

	case *models.Payment:
		return ownedResource(caller, action, res, "payment", "booking")
	}

	return deny("no rule permits this action")
}

// ownedResource covers ticket and payment: create requires owning the
// referenced booking, everything else requires owning the resource.
// Both resolve to the same transitive passenger check.
func ownedResource(caller Identity, action Action, res models.PassengerOwned, noun, parent string) Decision {
	if ownsAsPassenger(caller, res) {
		return allowed()
	}
	if action == ActionCreate {
		return deny("a " + noun + " may only be created against your own " + parent)
	}
	return deny("not the owner of this " + noun)
}

func ownsAsPassenger(caller Identity, res models.PassengerOwned) bool {
	return caller.IsPassenger() && caller.PassengerID != 0 && res.OwnerPassengerID() == caller.PassengerID
}
