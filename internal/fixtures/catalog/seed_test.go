package catalog_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/catalog"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	collections []projection.Collection
	cards       []dto.CardCreate
	packs       []dto.PackCreate
	packErr     error
}

func (f *fakeCatalog) FindAll(context.Context) ([]projection.Collection, error) {
	return f.collections, nil
}

func (f *fakeCatalog) Create(_ context.Context, in *dto.CollectionCreate, _ authz.Principal) (*projection.Collection, error) {
	c := projection.Collection{ID: uuid.New(), Name: in.Name}
	f.collections = append(f.collections, c)
	return &c, nil
}

type fakeCards struct{ *fakeCatalog }

func (f fakeCards) Create(_ context.Context, in *dto.CardCreate, _ authz.Principal) (*projection.Card, error) {
	f.cards = append(f.cards, *in)
	return &projection.Card{ID: uuid.New(), Name: in.Name}, nil
}

type fakePacks struct{ *fakeCatalog }

func (f fakePacks) Create(_ context.Context, in *dto.PackCreate, _ authz.Principal) (*projection.Pack, error) {
	if f.packErr != nil {
		return nil, f.packErr
	}
	f.packs = append(f.packs, *in)
	return &projection.Pack{ID: uuid.New(), Name: in.Name}, nil
}

func newSeeder(f *fakeCatalog) *catalog.Seeder {
	return &catalog.Seeder{
		Collections: f,
		Cards:       fakeCards{f},
		Packs:       fakePacks{f},
		Logger:      slog.Default(),
	}
}

var seeds = []catalog.CollectionSeed{
	{
		Name:  "Motos",
		Cards: []catalog.CardSeed{{Name: "Scooter", Rarity: "comum", Type: "urbana", Attack: 30, Defense: 20}},
		Packs: []catalog.PackSeed{{Name: "Duas Rodas", Price: decimal.NewFromInt(25), CardCount: 2}},
	},
	{
		Name:  "Naves",
		Cards: []catalog.CardSeed{{Name: "Cruzador"}, {Name: "Caça"}},
	},
}

func TestSeed_CreatesEverythingOnce(t *testing.T) {
	f := &fakeCatalog{}
	s := newSeeder(f)
	admin := authz.Principal{ID: uuid.New(), IsAdmin: true}

	report, err := s.Seed(context.Background(), seeds, admin)
	require.NoError(t, err)
	assert.Equal(t, catalog.Report{Collections: 2, Cards: 3, Packs: 1}, report)
	require.Len(t, f.packs, 1)
	assert.Equal(t, f.collections[0].ID, f.packs[0].CollectionID)
	assert.Equal(t, f.collections[1].ID, f.cards[2].CollectionID)

	report, err = s.Seed(context.Background(), seeds, admin)
	require.NoError(t, err)
	assert.Zero(t, report.Collections)
	assert.Equal(t, []string{"Motos", "Naves"}, report.Skipped)
	assert.Len(t, f.cards, 3)
}

func TestSeed_StopsOnError(t *testing.T) {
	f := &fakeCatalog{packErr: errors.New("boom")}
	report, err := newSeeder(f).Seed(context.Background(), seeds, authz.Principal{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pack "Duas Rodas"`)
	assert.Equal(t, 1, report.Collections)
	assert.Equal(t, 1, report.Cards)
}
