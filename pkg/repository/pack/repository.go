package pack

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
)

// Repository defines the interface for pack data access operations.
type Repository interface {
	Create(ctx context.Context, create *dto.PackCreate) error
	Update(ctx context.Context, id uuid.UUID, update *dto.PackUpdate) error
	// Get returns the pack with its collection, or (nil, nil) when missing.
	Get(ctx context.Context, id uuid.UUID) (*pack.Pack, error)
	List(ctx context.Context) ([]*pack.Pack, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
