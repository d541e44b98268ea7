package pack_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/mocks"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	packsvc "github.com/leotinoco7/supertrunfo/pkg/service/pack"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	admin  = authz.Principal{ID: uuid.New(), IsAdmin: true}
	player = authz.Principal{ID: uuid.New()}
)

func newPackServiceWithMocks(t *testing.T) (*packsvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork(t)
	return packsvc.New(uow, authz.NewRolePolicy(), slog.Default()), uow
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("admin only", func(t *testing.T) {
		svc, uow := newPackServiceWithMocks(t)
		_, err := svc.Create(context.Background(), &dto.PackCreate{Name: "p"}, player)
		assert.ErrorIs(t, err, authz.ErrAccessDenied)
		assert.Zero(t, uow.DoCalls)
	})

	t.Run("validates price and count", func(t *testing.T) {
		svc, _ := newPackServiceWithMocks(t)
		_, err := svc.Create(context.Background(), &dto.PackCreate{
			Name: "p", Price: decimal.NewFromInt(-1), CardCount: 5,
		}, admin)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Create(context.Background(), &dto.PackCreate{
			Name: "p", Price: decimal.NewFromInt(10), CardCount: 0,
		}, admin)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown collection", func(t *testing.T) {
		svc, uow := newPackServiceWithMocks(t)
		cid := uuid.New()
		uow.Collections.On("Get", mock.Anything, cid).Return(nil, nil)

		_, err := svc.Create(context.Background(), &dto.PackCreate{
			Name: "p", Price: decimal.NewFromInt(10), CardCount: 5, CollectionID: cid,
		}, admin)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("creates", func(t *testing.T) {
		svc, uow := newPackServiceWithMocks(t)
		col := &card.Collection{ID: uuid.New(), Name: "Base"}
		uow.Collections.On("Get", mock.Anything, col.ID).Return(col, nil)
		uow.Packs.On("Create", mock.Anything, mock.MatchedBy(func(c *dto.PackCreate) bool {
			return c.ID != uuid.Nil && c.Name == "Starter"
		})).Return(nil)
		stored := &pack.Pack{
			ID: uuid.New(), Name: "Starter", Price: decimal.NewFromInt(100),
			CardCount: 5, CollectionID: col.ID, Collection: col,
		}
		uow.Packs.On("Get", mock.Anything, mock.Anything).Return(stored, nil)

		got, err := svc.Create(context.Background(), &dto.PackCreate{
			Name: " Starter ", Price: decimal.NewFromInt(100), CardCount: 5, CollectionID: col.ID,
		}, admin)
		require.NoError(t, err)
		assert.Equal(t, "Starter", got.Name)
		assert.Equal(t, "Base", got.Collection.Name)
	})
}

func TestOpen_Success(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	c := &card.Card{ID: uuid.New(), Name: "Pikachu"}
	p := &pack.Pack{ID: uuid.New(), Price: decimal.NewFromInt(50), CardCount: 3, CollectionID: uuid.New()}
	uow.Packs.On("Get", mock.Anything, p.ID).Return(p, nil)
	uow.Cards.On("List", mock.Anything, &p.CollectionID).Return([]*card.Card{c}, nil)
	uow.Users.On("Debit", mock.Anything, player.ID, p.Price).Return(nil)
	uow.Cards.On("AddToAlbum", mock.Anything, player.ID, []uuid.UUID{c.ID, c.ID, c.ID}).
		Return([]card.Ownership{
			{ID: uuid.New(), UserID: player.ID, CardID: c.ID},
			{ID: uuid.New(), UserID: player.ID, CardID: c.ID},
			{ID: uuid.New(), UserID: player.ID, CardID: c.ID},
		}, nil)

	got, err := svc.Open(context.Background(), p.ID, player.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, oc := range got {
		assert.Equal(t, "Pikachu", oc.Card.Name)
	}
}

func TestOpen_InsufficientFunds(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	p := &pack.Pack{ID: uuid.New(), Price: decimal.NewFromInt(500), CardCount: 3, CollectionID: uuid.New()}
	uow.Packs.On("Get", mock.Anything, p.ID).Return(p, nil)
	uow.Cards.On("List", mock.Anything, &p.CollectionID).Return([]*card.Card{{ID: uuid.New()}}, nil)
	uow.Users.On("Debit", mock.Anything, player.ID, p.Price).Return(domain.ErrInsufficientFunds)

	got, err := svc.Open(context.Background(), p.ID, player.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, got)
	uow.Cards.AssertNotCalled(t, "AddToAlbum", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpen_EmptyCollection(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	p := &pack.Pack{ID: uuid.New(), Price: decimal.NewFromInt(5), CardCount: 3, CollectionID: uuid.New()}
	uow.Packs.On("Get", mock.Anything, p.ID).Return(p, nil)
	uow.Cards.On("List", mock.Anything, &p.CollectionID).Return([]*card.Card{}, nil)

	_, err := svc.Open(context.Background(), p.ID, player.ID)
	assert.ErrorIs(t, err, pack.ErrEmptyCollection)
	uow.Users.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpen_MissingPack(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	id := uuid.New()
	uow.Packs.On("Get", mock.Anything, id).Return(nil, nil)

	_, err := svc.Open(context.Background(), id, player.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_AlbumWriteFails(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	p := &pack.Pack{ID: uuid.New(), Price: decimal.NewFromInt(5), CardCount: 1, CollectionID: uuid.New()}
	boom := errors.New("boom")
	uow.Packs.On("Get", mock.Anything, p.ID).Return(p, nil)
	uow.Cards.On("List", mock.Anything, &p.CollectionID).Return([]*card.Card{{ID: uuid.New()}}, nil)
	uow.Users.On("Debit", mock.Anything, player.ID, p.Price).Return(nil)
	uow.Cards.On("AddToAlbum", mock.Anything, player.ID, mock.Anything).Return(nil, boom)

	_, err := svc.Open(context.Background(), p.ID, player.ID)
	assert.ErrorIs(t, err, boom)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("non-admin", func(t *testing.T) {
		svc, _ := newPackServiceWithMocks(t)
		_, err := svc.Delete(context.Background(), uuid.New(), player)
		assert.ErrorIs(t, err, authz.ErrAccessDenied)
	})

	t.Run("deletes", func(t *testing.T) {
		svc, uow := newPackServiceWithMocks(t)
		id := uuid.New()
		uow.Packs.On("Get", mock.Anything, id).Return(&pack.Pack{ID: id}, nil)
		uow.Packs.On("Delete", mock.Anything, id).Return(nil)

		msg, err := svc.Delete(context.Background(), id, admin)
		require.NoError(t, err)
		assert.Equal(t, packsvc.MsgPackDeleted, msg)
	})
}

func TestUpdate_RejectsBadCount(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	n := packsvc.MaxCardCount + 1

	_, err := svc.Update(context.Background(), uuid.New(), &dto.PackUpdate{CardCount: &n}, admin)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, uow.DoCalls)
}

func TestFindAll(t *testing.T) {
	t.Parallel()
	svc, uow := newPackServiceWithMocks(t)
	uow.Packs.On("List", mock.Anything).Return([]*pack.Pack{{ID: uuid.New(), Name: "a"}, {ID: uuid.New(), Name: "b"}}, nil)

	got, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
