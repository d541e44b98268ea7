package card

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
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

func TestCardRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	create := &dto.CardCreate{ID: uuid.New(), Name: "T-Rex", Rarity: "legendary", Type: "carnivore", Attack: 90, Defense: 40, CollectionID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cards" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.Create(context.Background(), create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cards" (.+) VALUES (.+)`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"cards\" violates foreign key constraint"})
	mock.ExpectRollback()
	err := repo.Create(context.Background(), create)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	c, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCardRepository_ListOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	userID := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "user_to_cards" WHERE user_id = \$1 AND id IN \(\$2,\$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "card_id", "created_at"}).
			AddRow(a.String(), userID.String(), uuid.NewString(), time.Now()))

	owned, err := repo.ListOwned(context.Background(), userID, []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, a, owned[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ListOwned_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	owned, err := repo.ListOwned(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, owned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_AddToAlbum(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	userID := uuid.New()
	cardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_to_cards" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(2, 2))
	mock.ExpectCommit()

	owned, err := repo.AddToAlbum(context.Background(), userID, []uuid.UUID{cardID, cardID})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.NotEqual(t, owned[0].ID, owned[1].ID)
	assert.Equal(t, cardID, owned[1].CardID)
	assert.Equal(t, userID, owned[0].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	attack := 99

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET .*"attack"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), uuid.New(), &dto.CardUpdate{Attack: &attack}))
	require.NoError(t, mock.ExpectationsWereMet())
}
