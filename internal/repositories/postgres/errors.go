package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ecolemusique/backoffice/internal/utils"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
)

// translate maps driver errors onto the sentinels services understand.
// The original error stays in the chain for logging.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", utils.ErrConflict, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", utils.ErrReference, err)
		case pgCheckViolation, pgInvalidTextRepr:
			return fmt.Errorf("%w: %w", utils.ErrInvalidInput, err)
		}
	}
	return err
}
