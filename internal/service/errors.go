package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Error taxonomy surfaced to handlers. Storage failures are returned as-is
// and rendered as a generic failure; cleanup failures are only logged.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// translateNotFound maps the store's no-rows error onto the taxonomy.
func translateNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
