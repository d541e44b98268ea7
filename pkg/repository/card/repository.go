package card

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
)

// Repository defines the interface for card catalog and album access.
type Repository interface {
	Create(ctx context.Context, create *dto.CardCreate) error
	Update(ctx context.Context, id uuid.UUID, update *dto.CardUpdate) error

	// Get retrieves a card with its collection. Returns (nil, nil) when missing.
	Get(ctx context.Context, id uuid.UUID) (*card.Card, error)

	// List retrieves every card, or only those of a collection when
	// collectionID is not nil.
	List(ctx context.Context, collectionID *uuid.UUID) ([]*card.Card, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListOwned returns the album entries among ids that belong to userID.
	ListOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]card.Ownership, error)

	// AddToAlbum records one ownership per card id, duplicates included,
	// and returns the created entries.
	AddToAlbum(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID) ([]card.Ownership, error)
}
