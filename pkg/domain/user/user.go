package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/utils"
	"github.com/shopspring/decimal"
)

var (
	// ErrIdentityInUse is returned on registration when the e-mail or CPF
	// already belongs to another user.
	ErrIdentityInUse = fmt.Errorf("%w: this e-mail/CPF is already in use", domain.ErrAlreadyExists)
	// ErrInvalidCredentials is returned when a login does not match a user.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid e-mail or password", domain.ErrUnauthorized)
)

// User represents a player account.
//
// Deck, Album and OwnedCards are only populated by the repository queries
// that load them.
type User struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	CPF        string           `json:"cpf"`
	Password   string           `json:"-"`
	ImageURL   string           `json:"imageUrl"`
	Ranking    int              `json:"ranking"`
	Balance    decimal.Decimal  `json:"balance"`
	IsAdmin    bool             `json:"isAdmin"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Deck       *deck.Deck       `json:"-"`
	Album      []card.Ownership `json:"-"`
	OwnedCards int64            `json:"-"`
}

// New creates a User with a bcrypt-hashed password and current timestamps.
func New(name, email, cpf, password string, cost int) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	cpf = NormalizeCPF(cpf)
	if name == "" {
		return nil, domain.Invalid("name cannot be empty")
	}
	if email == "" {
		return nil, domain.Invalid("email cannot be empty")
	}
	if cpf == "" {
		return nil, domain.Invalid("CPF cannot be empty")
	}
	if password == "" {
		return nil, domain.Invalid("password cannot be empty")
	}
	hashedPassword, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, domain.Invalid(err.Error())
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CPF:       cpf,
		Password:  hashedPassword,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeEmail trims and lower-cases an e-mail address. Addresses are
// stored and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCPF keeps only the digits of a CPF so that formatted and bare
// inputs compare equal.
func NormalizeCPF(cpf string) string {
	return utils.OnlyDigits(cpf)
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.Password)
}
