package user

import "github.com/shopspring/decimal"

// NewUser represents the request body for creating a new user.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	CPF      string `json:"cpf" validate:"required,cpf"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url,max=255"`
}

// UpdateMyAccountInput represents the request body for a partial update of
// the caller's account. Absent fields are left untouched; an empty imageUrl
// clears the image.
type UpdateMyAccountInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	CPF      *string `json:"cpf" validate:"omitempty,cpf"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	ImageURL *string `json:"imageUrl" validate:"omitzero,url,max=255"`
}

// CreditInput represents the request body for crediting a user's balance.
type CreditInput struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}
