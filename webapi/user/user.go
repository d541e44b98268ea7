package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/middleware"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

func Routes(
	app *fiber.App,
	userSvc *usersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.Protected(cfg.Auth.Jwt, authSvc, userSvc)
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protected...), h)
	}

	app.Post("/user", CreateUser(userSvc))
	app.Get("/user", with(FindAll(userSvc))...)
	app.Get("/user/my-account", with(FindMyAccount(userSvc))...)
	app.Get("/user/my-album", with(FindMyAlbum(userSvc))...)
	app.Patch("/user/my-account", with(UpdateMyAccount(userSvc))...)
	app.Delete("/user/my-account", with(DeleteMyAccount(userSvc))...)
	app.Get("/user/:id", with(FindOne(userSvc))...)
	app.Delete("/user/:id", with(Remove(userSvc))...)
	app.Post("/user/:id/credit", with(Credit(userSvc))...)
}

// CreateUser registers a new player.
// @Summary Create a new user
// @Description Register a player. E-mail and CPF must both be unused.
// @Tags create-user
// @Accept json
// @Produce json
// @Param request body NewUser true "User creation data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [post]
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUser](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Create(c.UserContext(), &dto.UserCreate{
			Name:     input.Name,
			Email:    input.Email,
			CPF:      input.CPF,
			Password: input.Password,
			ImageURL: input.ImageURL,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// FindAll lists every user.
// @Summary List users
// @Description List every user without CPF or password. Admin only.
// @Tags user-admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [get]
// @Security Bearer
func FindAll(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		users, err := userSvc.FindAll(c.UserContext(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users found", users)
	}
}

// FindOne returns a user by id.
// @Summary Get user by ID
// @Description Retrieve any user's profile. Admin only.
// @Tags user-admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [get]
// @Security Bearer
func FindOne(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		if err := userSvc.RequireAdmin(caller); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find user", err)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		u, err := userSvc.FindOne(c.UserContext(), id, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't find user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// Remove deletes a user by id.
// @Summary Delete user
// @Description Delete any user. Admin only.
// @Tags user-admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [delete]
// @Security Bearer
func Remove(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		if err := userSvc.RequireAdmin(caller); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		msg, err := userSvc.Remove(c.UserContext(), id, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// Credit adds coins to a user's balance.
// @Summary Credit balance
// @Description Add coins to a user's balance. Admin only.
// @Tags user-admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body CreditInput true "Amount to credit"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id}/credit [post]
// @Security Bearer
func Credit(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := authz.PrincipalOf(middleware.CurrentUser(c))
		if err := userSvc.RequireAdmin(caller); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't credit balance", err)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreditInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Credit(c.UserContext(), id, input.Amount, caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't credit balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance credited", u)
	}
}

// FindMyAccount returns the caller's account with its deck.
// @Summary My account
// @Description The caller's profile, deck and number of owned cards.
// @Tags user-my-account
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/my-account [get]
// @Security Bearer
func FindMyAccount(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me := middleware.CurrentUser(c)
		acc, err := userSvc.FindMyAcc(c.UserContext(), me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load your account", err)
		}
		if acc == nil {
			return common.ProblemDetailsJSON(c, "Not Found", nil, "your account no longer exists", fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", acc)
	}
}

// FindMyAlbum returns every card the caller owns.
// @Summary My album
// @Description Every card the caller owns, with card and collection details.
// @Tags user-my-account
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/my-album [get]
// @Security Bearer
func FindMyAlbum(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me := middleware.CurrentUser(c)
		album, err := userSvc.FindMyAlbum(c.UserContext(), me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load your album", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Album found", album)
	}
}

// UpdateMyAccount partially updates the caller's account.
// @Summary Update my account
// @Description Partial update. A new password is hashed before storage.
// @Tags user-my-account
// @Accept json
// @Produce json
// @Param request body UpdateMyAccountInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /user/my-account [patch]
// @Security Bearer
func UpdateMyAccount(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateMyAccountInput](c)
		if input == nil {
			return err // error response already written
		}
		me := middleware.CurrentUser(c)
		u, err := userSvc.UpdateMyAcc(c.UserContext(), me.ID, &dto.UserUpdate{
			Name:     input.Name,
			Email:    input.Email,
			CPF:      input.CPF,
			Password: input.Password,
			ImageURL: input.ImageURL,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update your account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", u)
	}
}

// DeleteMyAccount deletes the caller's account.
// @Summary Delete my account
// @Tags user-my-account
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /user/my-account [delete]
// @Security Bearer
func DeleteMyAccount(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me := middleware.CurrentUser(c)
		msg, err := userSvc.DeleteMyAcc(c.UserContext(), me.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete your account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}
