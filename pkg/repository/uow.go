package repository

import (
	"context"

	"github.com/leotinoco7/supertrunfo/pkg/repository/card"
	"github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	"github.com/leotinoco7/supertrunfo/pkg/repository/deck"
	"github.com/leotinoco7/supertrunfo/pkg/repository/pack"
	"github.com/leotinoco7/supertrunfo/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories returned from inside Do share the transaction session, so
// every write made through them commits or rolls back together.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (user.Repository, error)
	DeckRepository() (deck.Repository, error)
	CardRepository() (card.Repository, error)
	CollectionRepository() (collection.Repository, error)
	PackRepository() (pack.Repository, error)
}
