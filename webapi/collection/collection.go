package collection

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	collectionsvc "github.com/leotinoco7/supertrunfo/pkg/service/collection"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

// CollectionInput is the request body for creating or renaming a collection.
type CollectionInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func Routes(
	app *fiber.App,
	collectionSvc *collectionsvc.Service,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
) {
	g := app.Group("/collection", middleware.Protected(cfg.Auth.Jwt, authSvc, userSvc)...)
	g.Post("/", CreateCollection(collectionSvc))
	g.Get("/", FindAllCollections(collectionSvc))
	g.Get("/:id", FindCollection(collectionSvc))
	g.Patch("/:id", UpdateCollection(collectionSvc))
	g.Delete("/:id", DeleteCollection(collectionSvc))
}

// CreateCollection
// @Summary Create collection
// @Tags collection
// @Accept json
// @Produce json
// @Param request body CollectionInput true "Collection data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /collection [post]
// @Security Bearer
func CreateCollection(svc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CollectionInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		col, err := svc.Create(c.UserContext(), &dto.CollectionCreate{Name: input.Name}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create collection", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Collection created", col)
	}
}

// FindAllCollections
// @Summary List collections
// @Tags collection
// @Produce json
// @Success 200 {object} common.Response
// @Router /collection [get]
// @Security Bearer
func FindAllCollections(svc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cols, err := svc.FindAll(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list collections", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Collections found", cols)
	}
}

// FindCollection
// @Summary Get collection
// @Tags collection
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /collection/{id} [get]
// @Security Bearer
func FindCollection(svc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		col, err := svc.FindOne(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find collection", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Collection found", col)
	}
}

// UpdateCollection
// @Summary Rename collection
// @Tags collection
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param request body CollectionInput true "Collection data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /collection/{id} [patch]
// @Security Bearer
func UpdateCollection(svc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CollectionInput](c)
		if input == nil {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		col, err := svc.Update(c.UserContext(), id, &dto.CollectionUpdate{Name: &input.Name}, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update collection", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Collection updated", col)
	}
}

// DeleteCollection
// @Summary Delete collection
// @Description Deletes the collection with its cards and packs.
// @Tags collection
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /collection/{id} [delete]
// @Security Bearer
func DeleteCollection(svc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		msg, err := svc.Delete(c.UserContext(), id, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete collection", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}
