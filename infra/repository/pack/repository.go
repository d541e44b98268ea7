package pack

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra/repository"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	repopack "github.com/leotinoco7/supertrunfo/pkg/repository/pack"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type packRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repopack.Repository {
	return &packRepository{db: db}
}

func (r *packRepository) Create(
	ctx context.Context,
	create *dto.PackCreate,
) error {
	m := &repository.Pack{
		ID:           create.ID,
		Name:         create.Name,
		Price:        create.Price,
		CardCount:    create.CardCount,
		CollectionID: create.CollectionID,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	})
}

func (r *packRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	pu *dto.PackUpdate,
) error {
	updates := make(map[string]any)
	if pu.Name != nil {
		updates["name"] = *pu.Name
	}
	if pu.Price != nil {
		updates["price"] = *pu.Price
	}
	if pu.CardCount != nil {
		updates["card_count"] = *pu.CardCount
	}
	if pu.CollectionID != nil {
		updates["collection_id"] = *pu.CollectionID
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.Pack{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *packRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*pack.Pack, error) {
	var m repository.Pack
	err := r.db.WithContext(ctx).Preload("Collection").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return repository.MapPackModelToDomain(&m), nil
}

func (r *packRepository) List(
	ctx context.Context,
) ([]*pack.Pack, error) {
	var ms []repository.Pack
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Preload("Collection").Order("name").Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*pack.Pack, 0, len(ms))
	for i := range ms {
		out = append(out, repository.MapPackModelToDomain(&ms[i]))
	}
	return out, nil
}

func (r *packRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&repository.Pack{}, "id = ?", id).Error
	})
}
