package pack

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	packsvc "github.com/leotinoco7/supertrunfo/pkg/service/pack"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

func Routes(
	app *fiber.App,
	packSvc *packsvc.Service,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
) {
	g := app.Group("/pack", middleware.Protected(cfg.Auth.Jwt, authSvc, userSvc)...)
	g.Post("/", CreatePack(packSvc))
	g.Get("/", FindAllPacks(packSvc))
	g.Get("/:id", FindPack(packSvc))
	g.Patch("/:id", UpdatePack(packSvc))
	g.Delete("/:id", DeletePack(packSvc))
	g.Post("/:id/open", OpenPack(packSvc))
}

// CreatePack
// @Summary Create pack
// @Tags pack
// @Accept json
// @Produce json
// @Param request body NewPackInput true "Pack data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /pack [post]
// @Security Bearer
func CreatePack(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewPackInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		p, err := svc.Create(c.UserContext(), &dto.PackCreate{
			Name:         input.Name,
			Price:        input.Price,
			CardCount:    input.CardCount,
			CollectionID: input.CollectionID,
		}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Pack created", p)
	}
}

// FindAllPacks
// @Summary List packs
// @Tags pack
// @Produce json
// @Success 200 {object} common.Response
// @Router /pack [get]
// @Security Bearer
func FindAllPacks(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packs, err := svc.FindAll(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list packs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Packs found", packs)
	}
}

// FindPack
// @Summary Get pack
// @Tags pack
// @Produce json
// @Param id path string true "Pack ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /pack/{id} [get]
// @Security Bearer
func FindPack(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		p, err := svc.FindOne(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pack found", p)
	}
}

// UpdatePack
// @Summary Update pack
// @Tags pack
// @Accept json
// @Produce json
// @Param id path string true "Pack ID"
// @Param request body UpdatePackInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /pack/{id} [patch]
// @Security Bearer
func UpdatePack(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdatePackInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		p, err := svc.Update(c.UserContext(), id, &dto.PackUpdate{
			Name:         input.Name,
			Price:        input.Price,
			CardCount:    input.CardCount,
			CollectionID: input.CollectionID,
		}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pack updated", p)
	}
}

// DeletePack
// @Summary Delete pack
// @Tags pack
// @Produce json
// @Param id path string true "Pack ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /pack/{id} [delete]
// @Security Bearer
func DeletePack(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		msg, err := svc.Delete(c.UserContext(), id, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// OpenPack buys and opens a pack.
// @Summary Open pack
// @Description Pays the pack's price from the caller's balance and adds its random cards to the album.
// @Tags pack
// @Produce json
// @Param id path string true "Pack ID"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /pack/{id}/open [post]
// @Security Bearer
func OpenPack(svc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		me := middleware.CurrentUser(c)
		cards, err := svc.Open(c.UserContext(), id, me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't open pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Pack opened", cards)
	}
}
