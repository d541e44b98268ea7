package deck

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
)

// Repository defines the interface for deck data access operations.
type Repository interface {
	// Create inserts a deck and links the given album entries to it.
	Create(ctx context.Context, create *dto.DeckCreate) error

	// Get retrieves a deck with its cards. Returns (nil, nil) when missing.
	Get(ctx context.Context, id uuid.UUID) (*deck.Deck, error)

	// GetByOwner retrieves the deck owned by userID. Returns (nil, nil) when missing.
	GetByOwner(ctx context.Context, userID uuid.UUID) (*deck.Deck, error)

	// Update renames a deck and, when CardIDs is set, replaces its card list.
	Update(ctx context.Context, id uuid.UUID, update *dto.DeckUpdate) error

	// ClearCards unlinks every card from the deck, keeping the deck itself.
	ClearCards(ctx context.Context, id uuid.UUID) error

	// Delete deletes a deck by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
