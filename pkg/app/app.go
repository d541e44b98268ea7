// Package app wires the services of the game backend from their
// dependencies.
package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	"github.com/leotinoco7/supertrunfo/pkg/service/auth"
	"github.com/leotinoco7/supertrunfo/pkg/service/card"
	"github.com/leotinoco7/supertrunfo/pkg/service/collection"
	"github.com/leotinoco7/supertrunfo/pkg/service/deck"
	"github.com/leotinoco7/supertrunfo/pkg/service/pack"
	"github.com/leotinoco7/supertrunfo/pkg/service/user"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Uow repository.UnitOfWork
	// LimiterStorage is nil when the rate limiter keeps its counters in
	// memory.
	LimiterStorage fiber.Storage
	Logger         *slog.Logger
}

type App struct {
	Deps              *Deps
	Config            *config.App
	AuthService       *auth.Service
	UserService       *user.Service
	DeckService       *deck.Service
	CollectionService *collection.Service
	CardService       *card.Service
	PackService       *pack.Service
}

func New(deps *Deps, cfg *config.App) *App {
	policy := authz.NewRolePolicy()
	return &App{
		Deps:              deps,
		Config:            cfg,
		AuthService:       auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger),
		UserService:       user.New(deps.Uow, policy, cfg.Security.BcryptCost, deps.Logger),
		DeckService:       deck.New(deps.Uow, policy, deps.Logger),
		CollectionService: collection.New(deps.Uow, policy, deps.Logger),
		CardService:       card.New(deps.Uow, policy, deps.Logger),
		PackService:       pack.New(deps.Uow, policy, deps.Logger),
	}
}
