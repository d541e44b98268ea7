package card

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra/repository"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	repocard "github.com/leotinoco7/supertrunfo/pkg/repository/card"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repocard.Repository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(
	ctx context.Context,
	create *dto.CardCreate,
) error {
	m := &repository.Card{
		ID:           create.ID,
		Name:         create.Name,
		Rarity:       create.Rarity,
		Type:         create.Type,
		Attack:       create.Attack,
		Defense:      create.Defense,
		ImageURL:     create.ImageURL,
		CollectionID: create.CollectionID,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	})
}

func (r *cardRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	cu *dto.CardUpdate,
) error {
	updates := make(map[string]any)
	if cu.Name != nil {
		updates["name"] = *cu.Name
	}
	if cu.Rarity != nil {
		updates["rarity"] = *cu.Rarity
	}
	if cu.Type != nil {
		updates["type"] = *cu.Type
	}
	if cu.Attack != nil {
		updates["attack"] = *cu.Attack
	}
	if cu.Defense != nil {
		updates["defense"] = *cu.Defense
	}
	if cu.ImageURL != nil {
		updates["image_url"] = *cu.ImageURL
	}
	if cu.CollectionID != nil {
		updates["collection_id"] = *cu.CollectionID
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.Card{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *cardRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*card.Card, error) {
	var m repository.Card
	err := r.db.WithContext(ctx).Preload("Collection").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return repository.MapCardModelToDomain(&m), nil
}

func (r *cardRepository) List(
	ctx context.Context,
	collectionID *uuid.UUID,
) ([]*card.Card, error) {
	var cards []repository.Card
	err := repository.WrapError(func() error {
		q := r.db.WithContext(ctx).Preload("Collection").Order("name")
		if collectionID != nil {
			q = q.Where("collection_id = ?", *collectionID)
		}
		return q.Find(&cards).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*card.Card, 0, len(cards))
	for i := range cards {
		out = append(out, repository.MapCardModelToDomain(&cards[i]))
	}
	return out, nil
}

func (r *cardRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&repository.Card{}, "id = ?", id).Error
	})
}

func (r *cardRepository) ListOwned(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]card.Ownership, error) {
	if len(ids) == 0 {
		return []card.Ownership{}, nil
	}
	var owned []repository.UserToCard
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND id IN ?", userID, ids).
			Find(&owned).Error
	})
	if err != nil {
		return nil, err
	}
	return repository.MapUserToCardModelsToDomain(owned), nil
}

func (r *cardRepository) AddToAlbum(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) ([]card.Ownership, error) {
	if len(cardIDs) == 0 {
		return []card.Ownership{}, nil
	}
	now := time.Now().UTC()
	rows := make([]repository.UserToCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		rows = append(rows, repository.UserToCard{
			ID:        uuid.New(),
			UserID:    userID,
			CardID:    id,
			CreatedAt: now,
		})
	}
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return repository.MapUserToCardModelsToDomain(rows), nil
}
