package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/mocks"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	authsvc "github.com/leotinoco7/supertrunfo/pkg/service/auth"
	usersvc "github.com/leotinoco7/supertrunfo/pkg/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtCfg.Secret))
	require.NoError(t, err)
	return s
}

func newProtectedApp(t *testing.T) (*fiber.App, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork(t)
	authSvc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	userSvc := usersvc.New(uow, authz.NewRolePolicy(), bcrypt.MinCost, slog.Default())
	app := fiber.New()
	app.Get("/", append(Protected(jwtCfg, authSvc, userSvc), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Name)
	})...)
	return app, uow
}

func TestProtected_MissingToken(t *testing.T) {
	app, _ := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProtected_WrongSignature(t *testing.T) {
	app, _ := newProtectedApp(t)
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_DeletedUser(t *testing.T) {
	app, uow := newProtectedApp(t)
	id := uuid.New()
	uow.Users.On("Get", mock.Anything, id).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"user_id": id.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_Success(t *testing.T) {
	app, uow := newProtectedApp(t)
	id := uuid.New()
	uow.Users.On("Get", mock.Anything, id).Return(&user.User{ID: id, Name: "alice"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"user_id": id.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtError_Malformed(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("Missing or malformed JWT"))
	})
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(Deadline(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok || time.Until(deadline) > time.Second {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if c.UserContext().Err() != nil {
			return c.SendStatus(fiber.StatusGatewayTimeout)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
