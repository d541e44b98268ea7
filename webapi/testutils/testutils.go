//go:build integration

package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/webapi"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// TestUser is a user registered through the API.
type TestUser struct {
	ID    uuid.UUID
	Name  string
	Email string
	CPF   string
}

// E2ETestSuite provides a test suite with a real Postgres database using Testcontainers
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	DB          *gorm.DB
	App         *app.App
	Fiber       *fiber.App
	Cfg         *config.App
}

// RandomCPF returns a valid, formatted CPF.
func RandomCPF() string {
	d := make([]int, 11)
	for i := range 9 {
		d[i] = rand.IntN(10)
	}
	for _, n := range []int{9, 10} {
		sum := 0
		for i := range n {
			sum += d[i] * (n + 1 - i)
		}
		check := sum * 10 % 11
		if check == 10 {
			check = 0
		}
		d[n] = check
	}
	return fmt.Sprintf("%d%d%d.%d%d%d.%d%d%d-%d%d",
		d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7], d[8], d[9], d[10])
}

func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

func testConfig(dsn string) *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Port: 3000, RequestTimeout: 10 * time.Second},
		Log:       &config.Log{Format: "text"},
		DB:        &config.DB{Url: dsn, MaxOpenConns: 5, MaxIdleConns: 5, ConnMaxLifetime: time.Minute},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "e2e-secret", Expiry: time.Hour}},
		Security:  &config.Security{BcryptCost: bcrypt.MinCost},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 100000, Window: time.Minute},
	}
}

// SetupSuite initializes the test suite with a real Postgres database
func (s *E2ETestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(infra.RunMigrations(s.DB, logger))

	s.Cfg = testConfig(dsn)
	s.App = app.New(&app.Deps{Uow: infra.NewUoW(s.DB), Logger: logger}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and unmarshals its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint: errcheck
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
}

// CreateTestUser registers a unique user via POST /user.
func (s *E2ETestSuite) CreateTestUser() *TestUser {
	suffix := uuid.New().String()[:8]
	u := &TestUser{
		Name:  "player_" + suffix,
		Email: fmt.Sprintf("player_%s@example.com", suffix),
		CPF:   RandomCPF(),
	}
	body := fmt.Sprintf(`{"name":%q,"email":%q,"cpf":%q,"password":%q}`, u.Name, u.Email, u.CPF, TestPassword)
	resp := s.MakeRequest(fiber.MethodPost, "/user", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	s.Decode(resp, &created)
	u.ID = created.ID
	return u
}

// CreateAdmin registers a user and grants it the admin flag.
func (s *E2ETestSuite) CreateAdmin() *TestUser {
	u := s.CreateTestUser()
	_, err := s.App.UserService.SetAdmin(context.Background(), u.Email, true)
	s.Require().NoError(err)
	return u
}

// LoginUser logs in through POST /auth/login and returns the token.
func (s *E2ETestSuite) LoginUser(u *TestUser) string {
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, u.Email, TestPassword)
	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
	}
	s.Decode(resp, &data)
	s.Require().NotEmpty(data.Token)
	return data.Token
}
