package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
)

// Repository defines the interface for collection data access operations.
type Repository interface {
	Create(ctx context.Context, create *dto.CollectionCreate) error
	Update(ctx context.Context, id uuid.UUID, update *dto.CollectionUpdate) error
	// Get returns (nil, nil) when the collection does not exist.
	Get(ctx context.Context, id uuid.UUID) (*card.Collection, error)
	List(ctx context.Context) ([]*card.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
