package access

import (
	"testing"

	"lightpath/internal/models"
)

func TestAuthorizeAdminBypass(t *testing.T) {
	admin := Identity{UserID: 1, Role: models.RoleAdmin}
	resources := []any{
		&models.Bus{},
		&models.Route{},
		&models.Conductor{},
		&models.Role{},
		&models.Trip{ConductorID: 99},
		&models.Booking{PassengerID: 99},
		&models.Ticket{Booking: models.Booking{PassengerID: 99}},
		&models.Payment{Booking: models.Booking{PassengerID: 99}},
	}
	for _, res := range resources {
		for _, action := range []Action{ActionList, ActionGet, ActionCreate, ActionUpdate, ActionDelete} {
			if d := Authorize(admin, action, res); !d.Allowed {
				t.Fatalf("admin denied %s on %T: %s", action, res, d.Reason)
			}
		}
	}
}

func TestAuthorizeAnonymousAlwaysDenied(t *testing.T) {
	anon := Identity{}
	if d := Authorize(anon, ActionList, &models.Trip{}); d.Allowed {
		t.Fatal("anonymous caller should be denied reads")
	}
	if d := Authorize(anon, ActionCreate, &models.Booking{}); d.Allowed {
		t.Fatal("anonymous caller should be denied writes")
	}
}

func TestAuthorizeFleetReadsOpenWritesAdminOnly(t *testing.T) {
	passenger := Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}
	conductor := Identity{UserID: 3, Role: models.RoleConductor, ConductorID: 5}

	for _, caller := range []Identity{passenger, conductor} {
		if d := Authorize(caller, ActionList, &models.Bus{}); !d.Allowed {
			t.Fatalf("authenticated caller denied fleet read: %s", d.Reason)
		}
		if d := Authorize(caller, ActionCreate, &models.Bus{}); d.Allowed {
			t.Fatal("non-admin fleet write should be denied")
		}
		if d := Authorize(caller, ActionDelete, &models.Route{}); d.Allowed {
			t.Fatal("non-admin fleet delete should be denied")
		}
	}
}

func TestAuthorizeTripConductorOwnership(t *testing.T) {
	conductor := Identity{UserID: 3, Role: models.RoleConductor, ConductorID: 5}

	own := &models.Trip{ConductorID: 5}
	other := &models.Trip{ConductorID: 6}

	if d := Authorize(conductor, ActionUpdate, own); !d.Allowed {
		t.Fatalf("conductor denied update on own trip: %s", d.Reason)
	}
	if d := Authorize(conductor, ActionUpdate, other); d.Allowed {
		t.Fatal("conductor must not modify another conductor's trip")
	}
	if d := Authorize(conductor, ActionGet, other); !d.Allowed {
		t.Fatalf("trip reads should be open to authenticated callers: %s", d.Reason)
	}

	// A passenger can read trips but never write them.
	passenger := Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}
	if d := Authorize(passenger, ActionCreate, own); d.Allowed {
		t.Fatal("passenger must not create trips")
	}
}

func TestAuthorizeBookingOwnership(t *testing.T) {
	passenger := Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}

	if d := Authorize(passenger, ActionCreate, &models.Booking{PassengerID: 7}); !d.Allowed {
		t.Fatalf("passenger denied booking for self: %s", d.Reason)
	}
	if d := Authorize(passenger, ActionCreate, &models.Booking{PassengerID: 8}); d.Allowed {
		t.Fatal("passenger must not book on behalf of another passenger")
	}
	if d := Authorize(passenger, ActionGet, &models.Booking{PassengerID: 8}); d.Allowed {
		t.Fatal("passenger must not read another passenger's booking")
	}
	if d := Authorize(passenger, ActionDelete, &models.Booking{PassengerID: 7}); !d.Allowed {
		t.Fatalf("owner denied delete on own booking: %s", d.Reason)
	}
}

func TestAuthorizeTransitiveOwnership(t *testing.T) {
	passenger := Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}

	ownTicket := &models.Ticket{Booking: models.Booking{PassengerID: 7}}
	otherTicket := &models.Ticket{Booking: models.Booking{PassengerID: 8}}
	if d := Authorize(passenger, ActionCreate, ownTicket); !d.Allowed {
		t.Fatalf("passenger denied ticket on own booking: %s", d.Reason)
	}
	if d := Authorize(passenger, ActionCreate, otherTicket); d.Allowed {
		t.Fatal("passenger must not issue tickets against another passenger's booking")
	}

	ownPayment := &models.Payment{Booking: models.Booking{PassengerID: 7}}
	otherPayment := &models.Payment{Booking: models.Booking{PassengerID: 8}}
	if d := Authorize(passenger, ActionCreate, ownPayment); !d.Allowed {
		t.Fatalf("passenger denied payment on own booking: %s", d.Reason)
	}
	if d := Authorize(passenger, ActionGet, otherPayment); d.Allowed {
		t.Fatal("passenger must not read another passenger's payment")
	}

	// A conductor holds no passenger profile, so owned resources are
	// out of reach even when ids collide numerically.
	conductor := Identity{UserID: 3, Role: models.RoleConductor, ConductorID: 7}
	if d := Authorize(conductor, ActionGet, ownTicket); d.Allowed {
		t.Fatal("conductor role must not satisfy passenger ownership")
	}
}

func TestAuthorizeUnknownResourceDenied(t *testing.T) {
	passenger := Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}
	if d := Authorize(passenger, ActionGet, &models.User{}); d.Allowed {
		t.Fatal("resources outside the closed set must be denied")
	}
}
