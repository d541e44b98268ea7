// Package mocks holds testify mocks for the repository interfaces and an
// in-process UnitOfWork that hands them out.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	repocard "github.com/leotinoco7/supertrunfo/pkg/repository/card"
	repocollection "github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	repodeck "github.com/leotinoco7/supertrunfo/pkg/repository/deck"
	repopack "github.com/leotinoco7/supertrunfo/pkg/repository/pack"
	repouser "github.com/leotinoco7/supertrunfo/pkg/repository/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// TestingT is what the constructors need from *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUnitOfWork runs Do inline against its repository mocks. When DoErr
// is set, Do fails without calling fn.
type MockUnitOfWork struct {
	Users       *MockUserRepository
	Decks       *MockDeckRepository
	Cards       *MockCardRepository
	Collections *MockCollectionRepository
	Packs       *MockPackRepository
	DoErr       error
	DoCalls     int
}

// NewMockUnitOfWork creates a unit of work with fresh repository mocks whose
// expectations are asserted on cleanup.
func NewMockUnitOfWork(t TestingT) *MockUnitOfWork {
	return &MockUnitOfWork{
		Users:       NewMockUserRepository(t),
		Decks:       NewMockDeckRepository(t),
		Cards:       NewMockCardRepository(t),
		Collections: NewMockCollectionRepository(t),
		Packs:       NewMockPackRepository(t),
	}
}

func (m *MockUnitOfWork) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	m.DoCalls++
	if m.DoErr != nil {
		return m.DoErr
	}
	return fn(m)
}

func (m *MockUnitOfWork) UserRepository() (repouser.Repository, error) {
	return m.Users, nil
}

func (m *MockUnitOfWork) DeckRepository() (repodeck.Repository, error) {
	return m.Decks, nil
}

func (m *MockUnitOfWork) CardRepository() (repocard.Repository, error) {
	return m.Cards, nil
}

func (m *MockUnitOfWork) CollectionRepository() (repocollection.Repository, error) {
	return m.Collections, nil
}

func (m *MockUnitOfWork) PackRepository() (repopack.Repository, error) {
	return m.Packs, nil
}

// MockUserRepository is a mock of repouser.Repository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetWithDeck(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetWithAlbum(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	args := m.Called(ctx, email, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockUserRepository) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockDeckRepository is a mock of repodeck.Repository.
type MockDeckRepository struct {
	mock.Mock
}

func NewMockDeckRepository(t TestingT) *MockDeckRepository {
	m := &MockDeckRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDeckRepository) Create(ctx context.Context, create *dto.DeckCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockDeckRepository) Get(ctx context.Context, id uuid.UUID) (*deck.Deck, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*deck.Deck)
	return d, args.Error(1)
}

func (m *MockDeckRepository) GetByOwner(ctx context.Context, userID uuid.UUID) (*deck.Deck, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*deck.Deck)
	return d, args.Error(1)
}

func (m *MockDeckRepository) Update(ctx context.Context, id uuid.UUID, update *dto.DeckUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockDeckRepository) ClearCards(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCardRepository is a mock of repocard.Repository.
type MockCardRepository struct {
	mock.Mock
}

func NewMockCardRepository(t TestingT) *MockCardRepository {
	m := &MockCardRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCardRepository) Create(ctx context.Context, create *dto.CardCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, id uuid.UUID, update *dto.CardUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockCardRepository) Get(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*card.Card)
	return c, args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, collectionID *uuid.UUID) ([]*card.Card, error) {
	args := m.Called(ctx, collectionID)
	cs, _ := args.Get(0).([]*card.Card)
	return cs, args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCardRepository) ListOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]card.Ownership, error) {
	args := m.Called(ctx, userID, ids)
	owned, _ := args.Get(0).([]card.Ownership)
	return owned, args.Error(1)
}

func (m *MockCardRepository) AddToAlbum(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID) ([]card.Ownership, error) {
	args := m.Called(ctx, userID, cardIDs)
	owned, _ := args.Get(0).([]card.Ownership)
	return owned, args.Error(1)
}

// MockCollectionRepository is a mock of repocollection.Repository.
type MockCollectionRepository struct {
	mock.Mock
}

func NewMockCollectionRepository(t TestingT) *MockCollectionRepository {
	m := &MockCollectionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCollectionRepository) Create(ctx context.Context, create *dto.CollectionCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, id uuid.UUID, update *dto.CollectionUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockCollectionRepository) Get(ctx context.Context, id uuid.UUID) (*card.Collection, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*card.Collection)
	return c, args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context) ([]*card.Collection, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*card.Collection)
	return cs, args.Error(1)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPackRepository is a mock of repopack.Repository.
type MockPackRepository struct {
	mock.Mock
}

func NewMockPackRepository(t TestingT) *MockPackRepository {
	m := &MockPackRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPackRepository) Create(ctx context.Context, create *dto.PackCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockPackRepository) Update(ctx context.Context, id uuid.UUID, update *dto.PackUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockPackRepository) Get(ctx context.Context, id uuid.UUID) (*pack.Pack, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pack.Pack)
	return p, args.Error(1)
}

func (m *MockPackRepository) List(ctx context.Context) ([]*pack.Pack, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*pack.Pack)
	return ps, args.Error(1)
}

func (m *MockPackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
