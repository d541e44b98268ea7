package deck

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra/repository"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	repodeck "github.com/leotinoco7/supertrunfo/pkg/repository/deck"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deckRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repodeck.Repository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(
	ctx context.Context,
	create *dto.DeckCreate,
) error {
	m := &repository.Deck{
		ID:     create.ID,
		Name:   create.Name,
		UserID: create.UserID,
	}
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	})
	if err != nil {
		return err
	}
	return r.link(ctx, create.ID, create.CardIDs)
}

// link inserts one deck_cards row per album entry.
func (r *deckRepository) link(
	ctx context.Context,
	deckID uuid.UUID,
	ids []uuid.UUID,
) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]repository.DeckCard, 0, len(ids))
	for _, id := range deck.UniqueIDs(ids) {
		rows = append(rows, repository.DeckCard{DeckID: deckID, UserToCardID: id})
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

func (r *deckRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*deck.Deck, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *deckRepository) GetByOwner(
	ctx context.Context,
	userID uuid.UUID,
) (*deck.Deck, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *deckRepository) first(
	ctx context.Context,
	query string,
	args ...any,
) (*deck.Deck, error) {
	var m repository.Deck
	err := r.db.WithContext(ctx).
		Preload("Cards.Card.Collection").
		Where(query, args...).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return repository.MapDeckModelToDomain(&m), nil
}

func (r *deckRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	du *dto.DeckUpdate,
) error {
	if du.Name == nil && du.CardIDs == nil {
		return nil
	}
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if du.Name != nil {
		updates["name"] = *du.Name
	}
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.Deck{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
	if err != nil || du.CardIDs == nil {
		return err
	}
	if err := r.ClearCards(ctx, id); err != nil {
		return err
	}
	return r.link(ctx, id, *du.CardIDs)
}

func (r *deckRepository) ClearCards(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Where("deck_id = ?", id).Delete(&repository.DeckCard{}).Error
	})
}

func (r *deckRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&repository.Deck{}, "id = ?", id).Error
	})
}
