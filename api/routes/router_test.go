package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/homeboardhq/homeboard-backend/internal/auth"
	"github.com/homeboardhq/homeboard-backend/internal/content"
	inventorysvc "github.com/homeboardhq/homeboard-backend/internal/inventory"
	jokesvc "github.com/homeboardhq/homeboard-backend/internal/jokes"
	socialsvc "github.com/homeboardhq/homeboard-backend/internal/social"
	pkgAuth "github.com/homeboardhq/homeboard-backend/pkg/auth"
	"github.com/homeboardhq/homeboard-backend/pkg/config"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "new-access", "new-refresh", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

// stubJokes embeds the interface so only the methods the routes under test
// hit need overriding.
type stubJokes struct {
	jokesvc.Service
}

func (stubJokes) RandomJoke(ctx context.Context) (*models.Joke, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no jokes available")
}

func (stubJokes) ListJokes(ctx context.Context) ([]models.Joke, error) {
	return []models.Joke{}, nil
}

type stubInventory struct {
	inventorysvc.Service
}

func (stubInventory) ListCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubInventory) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "ledger entries are immutable; record a compensating entry instead")
}

type stubSocial struct {
	socialsvc.Service
}

func (stubSocial) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return []models.Profile{}, nil
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuth) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubRegister struct{}

func (stubRegister) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserDTO, error) {
	return &auth.UserDTO{ID: uuid.New(), Email: req.Email}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:          testConfig(),
		DB:              stubPinger{},
		Redis:           stubPinger{},
		SessionManager:  stubSessionManager{},
		Registry:        prometheus.NewRegistry(),
		AuthService:     stubAuth{},
		RegisterService: stubRegister{},
		Inventory:       stubInventory{},
		Social:          stubSocial{},
		Jokes:           stubJokes{},
		Quotes:          content.NewQuotes(),
		Restaurant:      content.NewRestaurant(),
	})
}

func authHeader(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    "access-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestInventoryRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/categories/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestInventoryWithToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/categories/", nil)
	req.Header.Set("Authorization", authHeader(t, testConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLedgerMutationRefused(t *testing.T) {
	router := newTestRouter(t)

	url := "/api/v1/inventory/purchases/" + uuid.NewString() + "/"
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("Authorization", authHeader(t, testConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "STATE_CONFLICT") {
		t.Fatalf("expected STATE_CONFLICT payload, got %s", resp.Body.String())
	}
}

func TestPublicJokesDoNotRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jokes/random", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from empty board got %d", resp.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
}

func TestRestaurantMenuPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurant/menu", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
