// Package testutils provides helpers for handler tests backed by repository
// mocks, and (with the integration tag) an end-to-end suite running the
// HTTP API against a Postgres container.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/mocks"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/webapi/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// HandlerEnv is an application wired to repository mocks.
type HandlerEnv struct {
	t   *testing.T
	UoW *mocks.MockUnitOfWork
	App *app.App
}

// NewHandlerEnv builds the services over a fresh mock unit of work.
func NewHandlerEnv(t *testing.T) *HandlerEnv {
	t.Helper()
	uow := mocks.NewMockUnitOfWork(t)
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{Port: 3000},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "handler-secret", Expiry: time.Hour}},
		Security:  &config.Security{BcryptCost: bcrypt.MinCost},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &HandlerEnv{
		t:   t,
		UoW: uow,
		App: app.New(&app.Deps{Uow: uow, Logger: logger}, cfg),
	}
}

// NewUser returns a stored-looking user that can authenticate.
func (e *HandlerEnv) NewUser(isAdmin bool) *user.User {
	return &user.User{
		ID:      uuid.New(),
		Name:    "Player",
		Email:   uuid.NewString()[:8] + "@example.com",
		CPF:     "52998224725",
		IsAdmin: isAdmin,
	}
}

// TokenFor signs a token for u and lets the auth middleware load u.
func (e *HandlerEnv) TokenFor(u *user.User) string {
	e.t.Helper()
	e.UoW.Users.On("Get", mock.Anything, u.ID).Return(u, nil).Maybe()
	token, err := e.App.AuthService.GenerateToken(context.Background(), u)
	require.NoError(e.t, err)
	return token
}

// Request sends one request through app.
func Request(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeData unmarshals the data field of a success envelope into out.
func DecodeData(t *testing.T, resp *http.Response, out any) common.Response {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return common.Response{Status: envelope.Status, Message: envelope.Message}
}

// DecodeProblem reads a problem-details body.
func DecodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
