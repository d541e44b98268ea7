package deck

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	decksvc "github.com/leotinoco7/supertrunfo/pkg/service/deck"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

func Routes(
	app *fiber.App,
	deckSvc *decksvc.Service,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
) {
	g := app.Group("/deck", middleware.Protected(cfg.Auth.Jwt, authSvc, userSvc)...)
	g.Post("/", CreateDeck(deckSvc))
	g.Get("/", FindMyDeck(deckSvc))
	g.Patch("/:id", UpdateDeck(deckSvc))
	g.Delete("/:id", DeleteDeck(deckSvc))
	g.Delete("/", ResetDeck(deckSvc))
}

// CreateDeck builds the caller's deck.
// @Summary Create deck
// @Description Create the caller's deck from album entries. One deck per player.
// @Tags deck
// @Accept json
// @Produce json
// @Param request body NewDeckInput true "Deck data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /deck [post]
// @Security Bearer
func CreateDeck(deckSvc *decksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewDeckInput](c)
		if input == nil {
			return err
		}
		me := middleware.CurrentUser(c)
		d, err := deckSvc.Create(c.UserContext(), &dto.DeckCreate{
			Name:    input.Name,
			CardIDs: input.CardIDs,
		}, me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create deck", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deck created", d)
	}
}

// FindMyDeck returns the caller's deck.
// @Summary My deck
// @Tags deck
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /deck [get]
// @Security Bearer
func FindMyDeck(deckSvc *decksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me := middleware.CurrentUser(c)
		d, err := deckSvc.FindMine(c.UserContext(), me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find your deck", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deck found", d)
	}
}

// UpdateDeck renames the deck or replaces its cards.
// @Summary Update deck
// @Tags deck
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param request body UpdateDeckInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /deck/{id} [patch]
// @Security Bearer
func UpdateDeck(deckSvc *decksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateDeckInput](c)
		if input == nil {
			return err
		}
		me := middleware.CurrentUser(c)
		d, err := deckSvc.Update(c.UserContext(), id, &dto.DeckUpdate{
			Name:    input.Name,
			CardIDs: input.CardIDs,
		}, me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update deck", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deck updated", d)
	}
}

// DeleteDeck deletes one of the caller's decks.
// @Summary Delete deck
// @Tags deck
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /deck/{id} [delete]
// @Security Bearer
func DeleteDeck(deckSvc *decksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		me := middleware.CurrentUser(c)
		msg, err := deckSvc.Delete(c.UserContext(), id, me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete deck", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// ResetDeck empties the caller's deck.
// @Summary Reset deck
// @Description Remove every card from the caller's deck, keeping the deck.
// @Tags deck
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /deck [delete]
// @Security Bearer
func ResetDeck(deckSvc *decksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me := middleware.CurrentUser(c)
		d, err := deckSvc.Reset(c.UserContext(), me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reset deck", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deck reset", d)
	}
}
