package deck

import "github.com/google/uuid"

// NewDeckInput represents the request body for creating a deck. CardIDs are
// album entry ids from GET /user/my-album.
type NewDeckInput struct {
	Name    string      `json:"name" validate:"required,max=100"`
	CardIDs []uuid.UUID `json:"cardIds" validate:"max=60"`
}

// UpdateDeckInput represents the request body for changing a deck. A
// present cardIds replaces the whole card list.
type UpdateDeckInput struct {
	Name    *string      `json:"name" validate:"omitempty,min=1,max=100"`
	CardIDs *[]uuid.UUID `json:"cardIds" validate:"omitempty,max=60"`
}
