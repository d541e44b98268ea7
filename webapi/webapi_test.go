package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/leotinoco7/supertrunfo/docs"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/mocks"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/webapi"
	"github.com/leotinoco7/supertrunfo/webapi/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(maxRequests int, window time.Duration) *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Port: 3000},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		Security:  &config.Security{BcryptCost: bcrypt.MinCost},
		RateLimit: &config.RateLimit{MaxRequests: maxRequests, Window: window},
	}
}

func doRequest(app *fiber.App, method, path, body, token string) *http.Response {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

func decode(s *suite.Suite, resp *http.Response, out any) {
	defer resp.Body.Close() //nolint: errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, out), string(raw))
}

type WebAPITestSuite struct {
	suite.Suite
	uow *mocks.MockUnitOfWork
	app *fiber.App
}

func (s *WebAPITestSuite) SetupTest() {
	s.uow = mocks.NewMockUnitOfWork(s.T())
	a := app.New(&app.Deps{Uow: s.uow, Logger: slog.Default()}, testConfig(1000, time.Minute))
	s.app = webapi.SetupApp(a)
}

func (s *WebAPITestSuite) TestStatus() {
	resp := doRequest(s.app, fiber.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Equal(webapi.StatusMessage, string(body))
}

func (s *WebAPITestSuite) TestProtectedRouteWithoutToken() {
	for _, path := range []string{"/deck", "/collection", "/card", "/pack", "/user/my-account"} {
		resp := doRequest(s.app, fiber.MethodGet, path, "", "")
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func (s *WebAPITestSuite) TestProtectedRouteWithForgedToken() {
	resp := doRequest(s.app, fiber.MethodGet, "/deck", "", "not.a.token")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *WebAPITestSuite) TestCreateUserRejectsBadCPF() {
	body := `{"name":"Ana","email":"ana@example.com","cpf":"111.111.111-11","password":"secret123"}`
	resp := doRequest(s.app, fiber.MethodPost, "/user", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal(common.MIMEProblemJSON, resp.Header.Get(fiber.HeaderContentType))
}

func (s *WebAPITestSuite) TestRegisterLoginAndReadAccount() {
	s.uow.Users.On("ExistsByEmailOrCPF", mock.Anything, "ana@example.com", "52998224725").
		Return(false, nil).Once()
	s.uow.Users.On("Create", mock.Anything, mock.MatchedBy(func(in *dto.UserCreate) bool {
		return in.Email == "ana@example.com" && in.Password != "secret123" && !in.IsAdmin
	})).Return(nil).Once()

	body := `{"name":"Ana","email":"ana@example.com","cpf":"529.982.247-25","password":"secret123"}`
	resp := doRequest(s.app, fiber.MethodPost, "/user", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created struct {
		Data map[string]any `json:"data"`
	}
	decode(&s.Suite, resp, &created)
	s.NotContains(created.Data, "password")
	s.NotContains(created.Data, "imageUrl")

	stored, err := user.New("Ana", "ana@example.com", "52998224725", "secret123", bcrypt.MinCost)
	s.Require().NoError(err)
	s.uow.Users.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil).Once()

	resp = doRequest(s.app, fiber.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"secret123"}`, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decode(&s.Suite, resp, &login)
	s.Require().NotEmpty(login.Data.Token)

	s.uow.Users.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()
	s.uow.Users.On("GetWithDeck", mock.Anything, stored.ID).Return(stored, nil).Once()

	resp = doRequest(s.app, fiber.MethodGet, "/user/my-account", "", login.Data.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var account struct {
		Data map[string]any `json:"data"`
	}
	decode(&s.Suite, resp, &account)
	s.Equal(stored.ID.String(), account.Data["id"])
	s.Nil(account.Data["deck"])
}

func (s *WebAPITestSuite) TestLoginWrongPassword() {
	stored, err := user.New("Ana", "ana@example.com", "52998224725", "secret123", bcrypt.MinCost)
	s.Require().NoError(err)
	s.uow.Users.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil).Once()

	resp := doRequest(s.app, fiber.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"nope"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func TestRateLimit(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	a := app.New(&app.Deps{Uow: uow, Logger: slog.Default()}, testConfig(5, time.Second))
	fiberApp := webapi.SetupApp(a)

	for i := range 6 {
		resp := doRequest(fiberApp, fiber.MethodGet, "/", "", "")
		_ = resp.Body.Close()
		if i < 5 {
			require.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d", i+1)
		} else {
			require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode, "request %d", i+1)
		}
	}

	time.Sleep(1100 * time.Millisecond)
	resp := doRequest(fiberApp, fiber.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimit_ForwardedForFromUntrustedPeer(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	cfg := testConfig(5, time.Minute)
	cfg.Server.ProxyHeader = fiber.HeaderXForwardedFor
	a := app.New(&app.Deps{Uow: uow, Logger: slog.Default()}, cfg)
	fiberApp := webapi.SetupApp(a)

	limited := 0
	for i := range 20 {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, fmt.Sprintf("10.0.0.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i+1))
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		if resp.StatusCode == fiber.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 15, limited)
}

func TestRateLimit_ForwardedForFromTrustedProxy(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	cfg := testConfig(1, time.Minute)
	cfg.Server.ProxyHeader = fiber.HeaderXForwardedFor
	// app.Test connections come from 0.0.0.0.
	cfg.Server.TrustedProxies = []string{"0.0.0.0"}
	a := app.New(&app.Deps{Uow: uow, Logger: slog.Default()}, cfg)
	fiberApp := webapi.SetupApp(a)

	send := func(clientIP string) int {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, clientIP)
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, fiber.StatusOK, send("10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, send("10.0.0.2"))
}

func TestAPIDocs(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	a := app.New(&app.Deps{Uow: uow, Logger: slog.Default()}, testConfig(100, time.Minute))
	fiberApp := webapi.SetupApp(a)

	resp := doRequest(fiberApp, fiber.MethodGet, "/api/index.html", "", "")
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(fiberApp, fiber.MethodGet, "/api/doc.json", "", "")
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/pack/{id}/open")
}
