package usecase

import (
	"errors"
	"strings"

	"go-clinic-management/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrForbidden    = errors.New("appointment belongs to another doctor")
	ErrInvalidRole  = errors.New("invalid role")
)

// isDuplicateKeyError checks for a unique violation, either translated by GORM
// or as a raw PostgreSQL error (code 23505) on the named constraint.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyError checks for a foreign key violation (PostgreSQL code 23503).
func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// authorize re-checks the guard the router applies, for callers that bypass it.
func authorize(actor *entity.User, capability entity.Capability) error {
	if !actor.Can(capability) {
		return ErrAccessDenied
	}
	return nil
}
