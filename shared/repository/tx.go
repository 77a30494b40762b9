package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrConflict reports a write that lost a race with a concurrent writer.
var ErrConflict = errors.New("concurrent modification")

// WithTransaction runs fn in a write transaction and commits when fn returns nil.
// Serialization failures and deadlocks reported by postgres are returned as ErrConflict.
func (repo *Repository[T]) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.span(ctx, "WithTransaction")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			repo.rollback(tx)
		}
	}()

	if err = fn(tx); err != nil {
		return asConflict(err)
	}

	if err = tx.Commit(); err != nil {
		return asConflict(fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err))
	}

	return nil
}

func (repo *Repository[T]) rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Str("entity", repo.entity).Msg("failed to rollback transaction")
	}
}

func asConflict(err error) error {
	if errors.Is(err, ErrConflict) {
		return err
	}

	if code, ok := pqCode(err); ok && (code == constant.PqErrorCodeSerializationFailure || code == constant.PqErrorCodeDeadlockDetected) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}

	return err
}

// IsForeignKeyViolation reports whether err was caused by a row still being referenced.
func IsForeignKeyViolation(err error) bool {
	code, ok := pqCode(err)

	return ok && code == constant.PqErrorCodeFkViolation
}

func pqCode(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}

	return string(pqErr.Code), true
}
