package infra

import (
	"context"

	cardrepo "github.com/leotinoco7/supertrunfo/infra/repository/card"
	collectionrepo "github.com/leotinoco7/supertrunfo/infra/repository/collection"
	deckrepo "github.com/leotinoco7/supertrunfo/infra/repository/deck"
	packrepo "github.com/leotinoco7/supertrunfo/infra/repository/pack"
	userrepo "github.com/leotinoco7/supertrunfo/infra/repository/user"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	"github.com/leotinoco7/supertrunfo/pkg/repository/card"
	"github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	"github.com/leotinoco7/supertrunfo/pkg/repository/deck"
	"github.com/leotinoco7/supertrunfo/pkg/repository/pack"
	"github.com/leotinoco7/supertrunfo/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Outside Do the repositories use the pooled connection directly.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction; fn's UnitOfWork hands out repositories bound
// to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() (user.Repository, error) {
	return userrepo.New(u.session()), nil
}

func (u *UoW) DeckRepository() (deck.Repository, error) {
	return deckrepo.New(u.session()), nil
}

func (u *UoW) CardRepository() (card.Repository, error) {
	return cardrepo.New(u.session()), nil
}

func (u *UoW) CollectionRepository() (collection.Repository, error) {
	return collectionrepo.New(u.session()), nil
}

func (u *UoW) PackRepository() (pack.Repository, error) {
	return packrepo.New(u.session()), nil
}
