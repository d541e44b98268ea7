package pack

import (
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/shopspring/decimal"
)

// ErrEmptyCollection is returned when a pack is opened but its collection has no cards to draw.
var ErrEmptyCollection = domain.Invalid("this pack's collection has no cards yet")

// Pack is a purchasable bundle of CardCount random cards drawn from one collection.
type Pack struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	CardCount    int              `json:"cardCount"`
	CollectionID uuid.UUID        `json:"collectionId"`
	Collection   *card.Collection `json:"collection,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
