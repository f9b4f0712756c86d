package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"

	"lightpath/internal/access"
	"lightpath/internal/domain"
	"lightpath/internal/models"
)

func TestTicketIssueRejectsTakenSeat(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "passenger_id", "trip_id"}).AddRow(10, 7, 3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WithArgs(uint(3), "12A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Issue(caller, TicketInput{BookingID: 10, SeatNumber: "12A"})
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketIssueRaceSurfacesAsSeatTaken(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	// The count misses but the (trip, seat) index catches the insert.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "passenger_id", "trip_id"}).AddRow(10, 7, 3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	_, err := svc.Issue(caller, TicketInput{BookingID: 10, SeatNumber: "12A"})
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("race must surface as ErrSeatTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketIssueDeniedOnForeignBooking(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "passenger_id", "trip_id"}).AddRow(10, 8, 3))
	mock.ExpectRollback()

	_, err := svc.Issue(caller, TicketInput{BookingID: 10, SeatNumber: "12A"})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketIssueDerivesTripFromBooking(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "passenger_id", "trip_id"}).AddRow(10, 7, 3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WithArgs(uint(3), "12A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	ticket, err := svc.Issue(caller, TicketInput{BookingID: 10, SeatNumber: " 12A "})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if ticket.TripID != 3 {
		t.Fatalf("trip id not derived from booking, got %d", ticket.TripID)
	}
	if ticket.SeatNumber != "12A" {
		t.Fatalf("seat not normalized, got %q", ticket.SeatNumber)
	}
	if ticket.Serial == "" {
		t.Fatal("ticket serial must be assigned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketIssueRejectsBlankSeat(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	_, err := svc.Issue(caller, TicketInput{BookingID: 10, SeatNumber: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected storage access: %v", err)
	}
}

func TestTicketUpdateRejectsTakenSeat(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}
	caller := access.Identity{UserID: 1, Role: models.RolePassenger, PassengerID: 7}

	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "trip_id", "seat_number"}).AddRow(30, 10, 3, "12A"))
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "passenger_id", "trip_id"}).AddRow(10, 7, 3))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WithArgs(uint(3), "14C").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	seat := "14C"
	_, err := svc.Update(caller, 30, TicketPatch{SeatNumber: &seat})
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketListEmptyScopeWithoutProfile(t *testing.T) {
	db, mock := newTestDB(t)
	svc := TicketService{DB: db}

	// Authenticated but holding neither profile.
	caller := access.Identity{UserID: 9, Role: models.RolePassenger}
	tickets, err := svc.List(caller)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected empty scope, got %d tickets", len(tickets))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected storage access: %v", err)
	}
}
