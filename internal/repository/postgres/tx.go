package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"firstseries/internal/domain"
)

// Postgres error codes mapped to domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
)

// withTx runs fn inside a transaction. It commits when fn returns nil and rolls back otherwise.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// associationErr tags err as a failure of the association rewrite step.
func associationErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrAssociationWrite, err)
}

// mapPQError translates constraint violations into domain errors.
func mapPQError(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return err
	}
	switch perr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, perr.Message)
	case pqForeignKeyViolation, pqInvalidTextRepr:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, perr.Message)
	}
	return err
}
