package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecolemusique/backoffice/internal/utils"
)

func TestAssociationRepo_ReplaceInstruments_InOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_instruments" WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "user_instruments" \("user_id","instrument_id"\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs("u-1", "i-1", "u-1", "i-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceInstruments(context.Background(), "u-1", []string{"i-1", "i-2"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationRepo_ReplaceInstruments_EmptySetOnlyDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_instruments"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceInstruments(context.Background(), "u-1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationRepo_ReplaceInstruments_KeepsDuplicates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_instruments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "user_instruments"`).
		WithArgs("u-1", "i-1", "u-1", "i-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceInstruments(context.Background(), "u-1", []string{"i-1", "i-1"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationRepo_ReplaceOrchestras_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_orchestras"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "user_orchestras"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	err := repo.ReplaceOrchestras(context.Background(), "u-1", []string{"missing"})
	assert.ErrorIs(t, err, utils.ErrReference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationRepo_ListInstruments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("i-1", "Flûte").
		AddRow("i-2", "Violon")
	mock.ExpectQuery(`SELECT i.id, i.name FROM user_instruments AS ui JOIN instruments i`).
		WithArgs("u-1").
		WillReturnRows(rows)

	out, err := repo.ListInstruments(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Flûte", out[0].Name)
}

func TestAssociationRepo_ListOrchestras_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectQuery(`FROM user_orchestras AS uo`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	out, err := repo.ListOrchestras(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAssociationRepo_ListOrchestras_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssociationRepo(db)

	mock.ExpectQuery(`FROM user_orchestras AS uo`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListOrchestras(context.Background(), "u-1")
	assert.EqualError(t, err, "connection reset")
}
