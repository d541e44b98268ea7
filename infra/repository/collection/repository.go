package collection

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra/repository"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	repocollection "github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repocollection.Repository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(
	ctx context.Context,
	create *dto.CollectionCreate,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&repository.Collection{
			ID:   create.ID,
			Name: create.Name,
		}).Error
	})
}

func (r *collectionRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	cu *dto.CollectionUpdate,
) error {
	if cu.Name == nil {
		return nil
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.Collection{}).
			Where("id = ?", id).
			Updates(map[string]any{"name": *cu.Name}).Error
	})
}

func (r *collectionRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*card.Collection, error) {
	var m repository.Collection
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return repository.MapCollectionModelToDomain(&m), nil
}

func (r *collectionRepository) List(
	ctx context.Context,
) ([]*card.Collection, error) {
	var ms []repository.Collection
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Order("name").Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*card.Collection, 0, len(ms))
	for i := range ms {
		out = append(out, repository.MapCollectionModelToDomain(&ms[i]))
	}
	return out, nil
}

func (r *collectionRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&repository.Collection{}, "id = ?", id).Error
	})
}
