package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

func TestTripCreateRejectsInvalidTimeRange(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TripService{DB: db}
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}

	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(admin, TripInput{
		BusID:         1,
		RouteID:       2,
		ConductorID:   5,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(-time.Hour),
	})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	// Nothing persisted.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected storage access: %v", err)
	}
}

func TestTripCreateForcesConductorToCaller(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TripService{DB: db}
	caller := access.Identity{UserID: 3, Role: models.RoleConductor, ConductorID: 5}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "buses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "routes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	// The existence probe runs against the caller's own profile, not
	// the conductor named in the payload.
	mock.ExpectQuery(`SELECT \* FROM "conductors"`).
		WithArgs(uint(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectCommit()

	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trip, err := svc.Create(caller, TripInput{
		BusID:         1,
		RouteID:       2,
		ConductorID:   9, // impersonation attempt
		DepartureTime: departure,
		ArrivalTime:   departure.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if trip.ConductorID != 5 {
		t.Fatalf("conductor not forced to caller profile, got %d", trip.ConductorID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripCreateDeniedForPassenger(t *testing.T) {
	db, _ := newTestDB(t)
	svc := TripService{DB: db}
	caller := access.Identity{UserID: 2, Role: models.RolePassenger, PassengerID: 7}

	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(caller, TripInput{
		BusID:         1,
		RouteID:       2,
		ConductorID:   5,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(time.Hour),
	})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestTripUpdateRejectsInvertedWindow(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TripService{DB: db}
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}

	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "route_id", "conductor_id", "departure_time", "arrival_time"}).
			AddRow(20, 1, 2, 5, departure, departure.Add(time.Hour)))

	early := departure.Add(-2 * time.Hour)
	_, err := svc.Update(admin, 20, TripPatch{ArrivalTime: &early})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}
