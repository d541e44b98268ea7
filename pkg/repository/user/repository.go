package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for user data access operations.
// Getters return (nil, nil) when no row matches.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update updates an existing user by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetWithDeck retrieves a user with its deck, the deck's cards and the
	// number of cards the user owns.
	GetWithDeck(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetWithAlbum retrieves a user with every card it owns.
	GetWithAlbum(ctx context.Context, id uuid.UUID) (*user.User, error)

	// List retrieves all users.
	List(ctx context.Context) ([]*user.User, error)

	// ExistsByEmailOrCPF reports whether any user has the given e-mail or CPF.
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)

	// Debit subtracts amount from the user's balance. It fails with
	// domain.ErrInsufficientFunds and changes nothing when the balance is
	// lower than amount.
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// Credit adds amount to the user's balance. It fails with
	// domain.ErrNotFound when no user has the id.
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// Delete deletes a user by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
