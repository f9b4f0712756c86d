package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"lightpath/internal/models"
)

var seededRoleNames = []string{models.RoleAdmin, models.RolePassenger, models.RoleConductor}

func TestEnsureRolesSeedsMissingRoles(t *testing.T) {
	db, mock := newTestDB(t)

	for i, name := range seededRoleNames {
		mock.ExpectQuery(`SELECT \* FROM "roles"`).
			WithArgs(name, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
		mock.ExpectQuery(`INSERT INTO "roles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}

	if err := EnsureRoles(db); err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureRolesLeavesEditedDescriptionsAlone(t *testing.T) {
	db, mock := newTestDB(t)

	// An admin has rewritten every description since the first boot.
	// The bootstrap must match on name alone and insert nothing.
	for i, name := range seededRoleNames {
		mock.ExpectQuery(`SELECT \* FROM "roles"`).
			WithArgs(name, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(i+1, name, "rewritten by an admin"))
	}

	if err := EnsureRoles(db); err != nil {
		t.Fatalf("bootstrap must stay idempotent, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected write: %v", err)
	}
}
