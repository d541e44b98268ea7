package deck

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
)

var (
	// ErrDeckExists is returned when a user that already has a deck tries to create another.
	ErrDeckExists = fmt.Errorf("%w: you already have a deck", domain.ErrAlreadyExists)
	// ErrForeignCards is returned when a deck references album entries the owner does not hold.
	ErrForeignCards = domain.Invalid("a deck may only hold cards from your own album")
)

// Deck is a named subset of its owner's album. A user has at most one.
type Deck struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	UserID    uuid.UUID        `json:"userId"`
	Cards     []card.Ownership `json:"cards"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// UniqueIDs returns ids with duplicates removed, keeping first-seen order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
