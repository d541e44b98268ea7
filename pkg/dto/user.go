package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserCreate represents the data needed to create a new user.
// Password is the plain text on the way into the service and the bcrypt hash
// on the way into the repository.
type UserCreate struct {
	ID       uuid.UUID
	Name     string
	Email    string
	CPF      string
	Password string
	ImageURL string
	Ranking  int
	Balance  decimal.Decimal
	IsAdmin  bool
}

// UserUpdate represents the data that can be updated for a user.
// Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	CPF      *string
	Password *string
	ImageURL *string
	Ranking  *int
	Balance  *decimal.Decimal
	IsAdmin  *bool
}
