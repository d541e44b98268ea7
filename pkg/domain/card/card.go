// Package card holds the catalog side of the game: collections, the cards
// they group, and the album records that say which user owns which card.
package card

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a named grouping of cards.
type Collection struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Card is immutable reference data from a player's point of view.
type Card struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Rarity       string      `json:"rarity"`
	Type         string      `json:"type"`
	Attack       int         `json:"attack"`
	Defense      int         `json:"defense"`
	ImageURL     string      `json:"imageUrl"`
	CollectionID uuid.UUID   `json:"collectionId"`
	Collection   *Collection `json:"collection,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Ownership records that a user owns one copy of a card (an album entry).
type Ownership struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CardID    uuid.UUID `json:"cardId"`
	Card      *Card     `json:"card,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
