package pack

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestPackRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	create := &dto.PackCreate{ID: uuid.New(), Name: "Starter", Price: decimal.NewFromInt(10), CardCount: 5, CollectionID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "packs" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.Create(context.Background(), create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "packs" (.+) VALUES (.+)`).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: "new row violates check constraint"})
	mock.ExpectRollback()
	require.ErrorIs(t, repo.Create(context.Background(), create), domain.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPackRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	price := decimal.RequireFromString("12.50")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "packs" SET .*"price"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), uuid.New(), &dto.PackUpdate{Price: &price}))
	require.NoError(t, repo.Update(context.Background(), uuid.New(), &dto.PackUpdate{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPackRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "packs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPackRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "packs" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	require.NoError(t, mock.ExpectationsWereMet())
}
