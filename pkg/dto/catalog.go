package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionCreate represents the data needed to create a collection.
type CollectionCreate struct {
	ID   uuid.UUID
	Name string
}

// CollectionUpdate represents the updatable fields of a collection.
type CollectionUpdate struct {
	Name *string
}

// CardCreate represents the data needed to create a card.
type CardCreate struct {
	ID           uuid.UUID
	Name         string
	Rarity       string
	Type         string
	Attack       int
	Defense      int
	ImageURL     string
	CollectionID uuid.UUID
}

// CardUpdate represents the updatable fields of a card.
type CardUpdate struct {
	Name         *string
	Rarity       *string
	Type         *string
	Attack       *int
	Defense      *int
	ImageURL     *string
	CollectionID *uuid.UUID
}

// PackCreate represents the data needed to create a pack.
type PackCreate struct {
	ID           uuid.UUID
	Name         string
	Price        decimal.Decimal
	CardCount    int
	CollectionID uuid.UUID
}

// PackUpdate represents the updatable fields of a pack.
type PackUpdate struct {
	Name         *string
	Price        *decimal.Decimal
	CardCount    *int
	CollectionID *uuid.UUID
}

// DeckCreate represents the data needed to create a deck.
// CardIDs are user-to-card (album entry) ids, not catalog card ids.
type DeckCreate struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Name    string
	CardIDs []uuid.UUID
}

// DeckUpdate represents the updatable fields of a deck.
// A nil CardIDs leaves the card list untouched.
type DeckUpdate struct {
	Name    *string
	CardIDs *[]uuid.UUID
}
