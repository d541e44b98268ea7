package pack

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewPackInput represents the request body for creating a pack.
type NewPackInput struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Price        decimal.Decimal `json:"price" swaggertype:"string" example:"100.00"`
	CardCount    int             `json:"cardCount" validate:"required,gte=1,lte=100"`
	CollectionID uuid.UUID       `json:"collectionId" validate:"required"`
}

// UpdatePackInput represents the request body for a partial pack update.
type UpdatePackInput struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Price        *decimal.Decimal `json:"price" swaggertype:"string"`
	CardCount    *int             `json:"cardCount" validate:"omitempty,gte=1,lte=100"`
	CollectionID *uuid.UUID       `json:"collectionId"`
}
