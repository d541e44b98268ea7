package card

import "github.com/google/uuid"

// NewCardInput represents the request body for creating a card.
type NewCardInput struct {
	Name         string    `json:"name" validate:"required,max=100"`
	Rarity       string    `json:"rarity" validate:"required,max=50"`
	Type         string    `json:"type" validate:"required,max=50"`
	Attack       int       `json:"attack" validate:"gte=0"`
	Defense      int       `json:"defense" validate:"gte=0"`
	ImageURL     string    `json:"imageUrl" validate:"omitempty,url,max=255"`
	CollectionID uuid.UUID `json:"collectionId" validate:"required"`
}

// UpdateCardInput represents the request body for a partial card update.
type UpdateCardInput struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Rarity       *string    `json:"rarity" validate:"omitempty,max=50"`
	Type         *string    `json:"type" validate:"omitempty,max=50"`
	Attack       *int       `json:"attack" validate:"omitempty,gte=0"`
	Defense      *int       `json:"defense" validate:"omitempty,gte=0"`
	ImageURL     *string    `json:"imageUrl" validate:"omitempty,url,max=255"`
	CollectionID *uuid.UUID `json:"collectionId"`
}
