package card

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	cardsvc "github.com/leotinoco7/supertrunfo/pkg/service/card"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

func Routes(
	app *fiber.App,
	cardSvc *cardsvc.Service,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
) {
	g := app.Group("/card", middleware.Protected(cfg.Auth.Jwt, authSvc, userSvc)...)
	g.Post("/", CreateCard(cardSvc))
	g.Get("/", FindAllCards(cardSvc))
	g.Get("/:id", FindCard(cardSvc))
	g.Patch("/:id", UpdateCard(cardSvc))
	g.Delete("/:id", DeleteCard(cardSvc))
}

// CreateCard
// @Summary Create card
// @Tags card
// @Accept json
// @Produce json
// @Param request body NewCardInput true "Card data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /card [post]
// @Security Bearer
func CreateCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewCardInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		card, err := svc.Create(c.UserContext(), &dto.CardCreate{
			Name:         input.Name,
			Rarity:       input.Rarity,
			Type:         input.Type,
			Attack:       input.Attack,
			Defense:      input.Defense,
			ImageURL:     input.ImageURL,
			CollectionID: input.CollectionID,
		}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Card created", card)
	}
}

// FindAllCards
// @Summary List cards
// @Tags card
// @Produce json
// @Param collectionId query string false "Only cards of this collection"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /card [get]
// @Security Bearer
func FindAllCards(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var collectionID *uuid.UUID
		if raw := c.Query("collectionId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid ID", nil, "collectionId must be a valid UUID", fiber.StatusBadRequest)
			}
			collectionID = &id
		}
		cards, err := svc.FindAll(c.UserContext(), collectionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list cards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cards found", cards)
	}
}

// FindCard
// @Summary Get card
// @Tags card
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /card/{id} [get]
// @Security Bearer
func FindCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		card, err := svc.FindOne(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Card found", card)
	}
}

// UpdateCard
// @Summary Update card
// @Tags card
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body UpdateCardInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /card/{id} [patch]
// @Security Bearer
func UpdateCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateCardInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		card, err := svc.Update(c.UserContext(), id, &dto.CardUpdate{
			Name:         input.Name,
			Rarity:       input.Rarity,
			Type:         input.Type,
			Attack:       input.Attack,
			Defense:      input.Defense,
			ImageURL:     input.ImageURL,
			CollectionID: input.CollectionID,
		}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Card updated", card)
	}
}

// DeleteCard
// @Summary Delete card
// @Tags card
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /card/{id} [delete]
// @Security Bearer
func DeleteCard(svc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		msg, err := svc.Delete(c.UserContext(), id, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}
