// Package middleware holds the Fiber middleware shared by protected routes.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
)

const currentUserKey = "currentUser"

// JwtProtected validates the bearer token and stores it in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.Secret),
		},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), jwtware.ErrJWTMissingOrMalformed.Error()) {
		return common.ProblemDetailsJSON(c, "Bad Request", nil, "Missing or malformed JWT", fiber.StatusBadRequest)
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", nil, "Invalid or expired JWT", fiber.StatusUnauthorized)
}

// LoggedUser resolves the token left by JwtProtected to the stored user.
// Tokens of deleted users are rejected.
func LoggedUser(authSvc *authsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		u, err := userSvc.Identify(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		if u == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "this account no longer exists", fiber.StatusUnauthorized)
		}
		c.Locals(currentUserKey, u)
		return c.Next()
	}
}

// Protected chains JwtProtected and LoggedUser.
func Protected(cfg *config.Jwt, authSvc *authsvc.Service, userSvc *usersvc.Service) []fiber.Handler {
	return []fiber.Handler{JwtProtected(cfg), LoggedUser(authSvc, userSvc)}
}

// CurrentUser returns the user stored by LoggedUser, or nil.
func CurrentUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(currentUserKey).(*user.User)
	return u
}
