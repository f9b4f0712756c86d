package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// translateUnique maps a storage-level unique-constraint violation to
// the conflict error the in-transaction check would have produced.
// Races that slip past check-then-insert surface here, never as a raw
// driver error.
func translateUnique(err error, conflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return conflict
	}
	return err
}
