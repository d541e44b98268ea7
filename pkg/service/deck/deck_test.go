package deck_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/mocks"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	decksvc "github.com/leotinoco7/supertrunfo/pkg/service/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeckServiceWithMocks(t *testing.T) (*decksvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork(t)
	return decksvc.New(uow, authz.NewRolePolicy(), slog.Default()), uow
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)
	owner := uuid.New()
	utc := uuid.New()
	uow.Decks.On("GetByOwner", mock.Anything, owner).Return(nil, nil).Once()
	uow.Cards.On("ListOwned", mock.Anything, owner, []uuid.UUID{utc}).
		Return([]card.Ownership{{ID: utc, UserID: owner}}, nil)
	var created uuid.UUID
	uow.Decks.On("Create", mock.Anything, mock.MatchedBy(func(c *dto.DeckCreate) bool {
		return c.UserID == owner && c.Name == "main"
	})).Run(func(args mock.Arguments) {
		created = args.Get(1).(*dto.DeckCreate).ID
	}).Return(nil)
	stored := &deck.Deck{ID: uuid.New(), Name: "main", UserID: owner, Cards: []card.Ownership{{ID: utc}}}
	uow.Decks.On("Get", mock.Anything, mock.MatchedBy(func(id uuid.UUID) bool {
		return id == created
	})).Return(stored, nil)

	got, err := svc.Create(context.Background(), &dto.DeckCreate{Name: " main ", CardIDs: []uuid.UUID{utc, utc}}, owner)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "main", got.Name)
	assert.Len(t, got.Cards, 1)
}

func TestCreate_SecondDeckRejected(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)
	owner := uuid.New()
	uow.Decks.On("GetByOwner", mock.Anything, owner).Return(&deck.Deck{ID: uuid.New(), UserID: owner}, nil)

	_, err := svc.Create(context.Background(), &dto.DeckCreate{Name: "again"}, owner)
	assert.ErrorIs(t, err, deck.ErrDeckExists)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreate_ForeignCardsRejected(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)
	owner := uuid.New()
	mine, theirs := uuid.New(), uuid.New()
	uow.Decks.On("GetByOwner", mock.Anything, owner).Return(nil, nil)
	uow.Cards.On("ListOwned", mock.Anything, owner, []uuid.UUID{mine, theirs}).
		Return([]card.Ownership{{ID: mine, UserID: owner}}, nil)

	_, err := svc.Create(context.Background(), &dto.DeckCreate{Name: "main", CardIDs: []uuid.UUID{mine, theirs}}, owner)
	assert.ErrorIs(t, err, deck.ErrForeignCards)
	assert.ErrorIs(t, err, domain.ErrValidation)
	uow.Decks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_EmptyName(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)

	_, err := svc.Create(context.Background(), &dto.DeckCreate{Name: "  "}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, uow.DoCalls)
}

func TestDelete_Ownership(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)
	o1, o2 := uuid.New(), uuid.New()
	d1 := &deck.Deck{ID: uuid.New(), UserID: o1}
	uow.Decks.On("Get", mock.Anything, d1.ID).Return(d1, nil)
	uow.Decks.On("Delete", mock.Anything, d1.ID).Return(nil).Once()

	_, err := svc.Delete(context.Background(), d1.ID, o2)
	require.ErrorIs(t, err, authz.ErrNotOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	msg, err := svc.Delete(context.Background(), d1.ID, o1)
	require.NoError(t, err)
	assert.Equal(t, decksvc.MsgDeckDeleted, msg)
}

func TestDelete_Missing(t *testing.T) {
	t.Parallel()
	svc, uow := newDeckServiceWithMocks(t)
	id := uuid.New()
	uow.Decks.On("Get", mock.Anything, id).Return(nil, nil)

	_, err := svc.Delete(context.Background(), id, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindMine(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		owner := uuid.New()
		uow.Decks.On("GetByOwner", mock.Anything, owner).
			Return(&deck.Deck{ID: uuid.New(), Name: "main", UserID: owner}, nil)

		got, err := svc.FindMine(context.Background(), owner)
		require.NoError(t, err)
		assert.Equal(t, "main", got.Name)
		assert.Empty(t, got.Cards)
	})

	t.Run("no deck", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		owner := uuid.New()
		uow.Decks.On("GetByOwner", mock.Anything, owner).Return(nil, nil)

		_, err := svc.FindMine(context.Background(), owner)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("renames and replaces cards", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		owner := uuid.New()
		utc := uuid.New()
		d := &deck.Deck{ID: uuid.New(), Name: "old", UserID: owner}
		name := "new"
		ids := []uuid.UUID{utc}
		uow.Decks.On("Get", mock.Anything, d.ID).Return(d, nil).Once()
		uow.Cards.On("ListOwned", mock.Anything, owner, ids).Return([]card.Ownership{{ID: utc}}, nil)
		uow.Decks.On("Update", mock.Anything, d.ID, mock.MatchedBy(func(u *dto.DeckUpdate) bool {
			return *u.Name == "new" && len(*u.CardIDs) == 1
		})).Return(nil)
		uow.Decks.On("Get", mock.Anything, d.ID).
			Return(&deck.Deck{ID: d.ID, Name: "new", UserID: owner, Cards: []card.Ownership{{ID: utc}}}, nil).Once()

		got, err := svc.Update(context.Background(), d.ID, &dto.DeckUpdate{Name: &name, CardIDs: &ids}, owner)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Name)
		assert.Len(t, got.Cards, 1)
	})

	t.Run("other owner", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		d := &deck.Deck{ID: uuid.New(), UserID: uuid.New()}
		name := "mine now"
		uow.Decks.On("Get", mock.Anything, d.ID).Return(d, nil)

		_, err := svc.Update(context.Background(), d.ID, &dto.DeckUpdate{Name: &name}, uuid.New())
		assert.ErrorIs(t, err, authz.ErrNotOwner)
		uow.Decks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReset(t *testing.T) {
	t.Parallel()

	t.Run("clears cards", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		owner := uuid.New()
		d := &deck.Deck{ID: uuid.New(), Name: "main", UserID: owner, Cards: []card.Ownership{{ID: uuid.New()}}}
		uow.Decks.On("GetByOwner", mock.Anything, owner).Return(d, nil)
		uow.Decks.On("ClearCards", mock.Anything, d.ID).Return(nil)

		got, err := svc.Reset(context.Background(), owner)
		require.NoError(t, err)
		assert.Equal(t, "main", got.Name)
		assert.Empty(t, got.Cards)
	})

	t.Run("no deck", func(t *testing.T) {
		svc, uow := newDeckServiceWithMocks(t)
		owner := uuid.New()
		uow.Decks.On("GetByOwner", mock.Anything, owner).Return(nil, nil)

		_, err := svc.Reset(context.Background(), owner)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
