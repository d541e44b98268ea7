package pack_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	packweb "github.com/leotinoco7/supertrunfo/webapi/pack"
	"github.com/leotinoco7/supertrunfo/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutils.HandlerEnv, *fiber.App) {
	env := testutils.NewHandlerEnv(t)
	app := fiber.New()
	packweb.Routes(app, env.App.PackService, env.App.AuthService, env.App.UserService, env.App.Config)
	return env, app
}

func TestOpenPack(t *testing.T) {
	env, app := setup(t)
	player := env.NewUser(false)
	token := env.TokenFor(player)

	colID := uuid.New()
	trex := &card.Card{ID: uuid.New(), Name: "T-Rex", CollectionID: colID}
	p := &pack.Pack{ID: uuid.New(), Name: "Starter", Price: decimal.NewFromInt(50), CardCount: 2, CollectionID: colID}

	env.UoW.Packs.On("Get", mock.Anything, p.ID).Return(p, nil).Once()
	env.UoW.Cards.On("List", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == colID
	})).Return([]*card.Card{trex}, nil).Once()
	env.UoW.Users.On("Debit", mock.Anything, player.ID, p.Price).Return(nil).Once()
	env.UoW.Cards.On("AddToAlbum", mock.Anything, player.ID, []uuid.UUID{trex.ID, trex.ID}).
		Return([]card.Ownership{
			{ID: uuid.New(), UserID: player.ID, CardID: trex.ID},
			{ID: uuid.New(), UserID: player.ID, CardID: trex.ID},
		}, nil).Once()

	resp := testutils.Request(t, app, fiber.MethodPost, "/pack/"+p.ID.String()+"/open", "", token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var opened []projection.OwnedCard
	testutils.DecodeData(t, resp, &opened)
	require.Len(t, opened, 2)
	assert.Equal(t, "T-Rex", opened[0].Card.Name)
}

func TestOpenPack_InsufficientFunds(t *testing.T) {
	env, app := setup(t)
	player := env.NewUser(false)
	token := env.TokenFor(player)

	colID := uuid.New()
	p := &pack.Pack{ID: uuid.New(), Price: decimal.NewFromInt(50), CardCount: 1, CollectionID: colID}
	env.UoW.Packs.On("Get", mock.Anything, p.ID).Return(p, nil).Once()
	env.UoW.Cards.On("List", mock.Anything, mock.Anything).
		Return([]*card.Card{{ID: uuid.New(), CollectionID: colID}}, nil).Once()
	env.UoW.Users.On("Debit", mock.Anything, player.ID, p.Price).
		Return(fmt.Errorf("%w: balance 0.00", domain.ErrInsufficientFunds)).Once()

	resp := testutils.Request(t, app, fiber.MethodPost, "/pack/"+p.ID.String()+"/open", "", token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	pd := testutils.DecodeProblem(t, resp)
	assert.Contains(t, pd.Detail, "insufficient funds")
}

func TestOpenPack_BadID(t *testing.T) {
	env, app := setup(t)
	token := env.TokenFor(env.NewUser(false))

	resp := testutils.Request(t, app, fiber.MethodPost, "/pack/nope/open", "", token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreatePack(t *testing.T) {
	env, app := setup(t)
	admin := env.NewUser(true)
	token := env.TokenFor(admin)
	colID := uuid.New()

	env.UoW.Collections.On("Get", mock.Anything, colID).
		Return(&card.Collection{ID: colID, Name: "Dinos"}, nil).Once()
	env.UoW.Packs.On("Create", mock.Anything, mock.MatchedBy(func(in *dto.PackCreate) bool {
		return in.Name == "Starter" && in.CardCount == 3 && in.Price.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	env.UoW.Packs.On("Get", mock.Anything, mock.Anything).
		Return(&pack.Pack{ID: uuid.New(), Name: "Starter", Price: decimal.NewFromInt(50), CardCount: 3, CollectionID: colID}, nil).Once()

	body := fmt.Sprintf(`{"name":"Starter","price":"50","cardCount":3,"collectionId":%q}`, colID)
	resp := testutils.Request(t, app, fiber.MethodPost, "/pack", body, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created projection.Pack
	testutils.DecodeData(t, resp, &created)
	assert.Equal(t, 3, created.CardCount)
}

func TestCreatePack_Rejected(t *testing.T) {
	env, app := setup(t)
	colID := uuid.New()

	tests := []struct {
		name   string
		admin  bool
		body   string
		status int
	}{
		{"player", false, fmt.Sprintf(`{"name":"S","price":"1","cardCount":1,"collectionId":%q}`, colID), fiber.StatusUnauthorized},
		{"too many cards", true, fmt.Sprintf(`{"name":"S","price":"1","cardCount":101,"collectionId":%q}`, colID), fiber.StatusBadRequest},
		{"missing collection id", true, `{"name":"S","price":"1","cardCount":1}`, fiber.StatusBadRequest},
		{"negative price", true, fmt.Sprintf(`{"name":"S","price":"-1","cardCount":1,"collectionId":%q}`, colID), fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token := env.TokenFor(env.NewUser(tc.admin))
			resp := testutils.Request(t, app, fiber.MethodPost, "/pack", tc.body, token)
			assert.Equal(t, tc.status, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestFindAllPacks(t *testing.T) {
	env, app := setup(t)
	token := env.TokenFor(env.NewUser(false))
	env.UoW.Packs.On("List", mock.Anything).
		Return([]*pack.Pack{{ID: uuid.New(), Name: "A"}, {ID: uuid.New(), Name: "B"}}, nil).Once()

	resp := testutils.Request(t, app, fiber.MethodGet, "/pack", "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var packs []projection.Pack
	testutils.DecodeData(t, resp, &packs)
	assert.Len(t, packs, 2)
}
