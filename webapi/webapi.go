// Package webapi provides the HTTP API of the game backend.
// It is organized into sub-packages per resource:
// - auth: login
// - user: registration, admin views and the caller's own account
// - deck: the caller's deck
// - collection, card, pack: the catalog and pack opening
package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authweb "github.com/leotinoco7/supertrunfo/webapi/auth"
	cardweb "github.com/leotinoco7/supertrunfo/webapi/card"
	collectionweb "github.com/leotinoco7/supertrunfo/webapi/collection"
	"github.com/leotinoco7/supertrunfo/webapi/common"
	deckweb "github.com/leotinoco7/supertrunfo/webapi/deck"
	packweb "github.com/leotinoco7/supertrunfo/webapi/pack"
	userweb "github.com/leotinoco7/supertrunfo/webapi/user"
)

// StatusMessage is the body of GET /.
const StatusMessage = "Super Trunfo API is running!"

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
		ProxyHeader:             cfg.Server.ProxyHeader,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.Server.TrustedProxies,
		EnableIPValidation:      true,
	})
	fiberApp.Get("/api/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	// Counters are shared through Redis when configured. c.IP() only
	// honours the proxy header for trusted proxies.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		Storage:    a.Deps.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(middleware.Deadline(cfg.Server.RequestTimeout))

	fiberApp.Get("/", Status)

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, cfg)
	deckweb.Routes(fiberApp, a.DeckService, a.AuthService, a.UserService, cfg)
	collectionweb.Routes(fiberApp, a.CollectionService, a.AuthService, a.UserService, cfg)
	cardweb.Routes(fiberApp, a.CardService, a.AuthService, a.UserService, cfg)
	packweb.Routes(fiberApp, a.PackService, a.AuthService, a.UserService, cfg)
	return fiberApp
}

// Status
// @Summary API status
// @Tags status
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Status(c *fiber.Ctx) error {
	return c.SendString(StatusMessage)
}
