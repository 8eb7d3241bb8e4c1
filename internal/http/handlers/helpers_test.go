package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/aarthiksaathi/aarthik-be/internal/auth"
	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/events"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/middleware"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
	"github.com/aarthiksaathi/aarthik-be/internal/storage/memory"
)

type testEnv struct {
	router  http.Handler
	store   *memory.Store
	tokens  *auth.TokenManager
	events  *events.Recorder
	metrics *metrics.Metrics
}

type envOption func(*envConfig)

type envConfig struct {
	profiles storage.ProfileStore
}

// withProfiles replaces the profile store seen by the catalog routes.
func withProfiles(p storage.ProfileStore) envOption {
	return func(c *envConfig) { c.profiles = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	env := &testEnv{
		store:   memory.New(),
		tokens:  auth.NewTokenManager("test-secret", "aarthik-test", time.Hour),
		events:  &events.Recorder{},
		metrics: metrics.New(),
	}
	cfg := envConfig{profiles: env.store}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	NewAuthHandler(env.store, cfg.profiles, env.tokens, logger, env.metrics).Register(r)
	catalogs := NewCatalogHandler(cat, cfg.profiles, logger, env.metrics)
	catalogs.RegisterPublic(r)
	NewTaxHandler(logger, env.metrics).Register(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(env.tokens, logger))
		catalogs.RegisterPersonalised(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(env.tokens, logger))
		NewProfileHandler(env.store, env.events, logger, env.metrics).Register(r)
	})
	env.router = r
	return env
}

// signUp creates a user directly in the store and returns a bearer token.
func (e *testEnv) signUp(t *testing.T, username string) (models.User, string) {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), models.User{Username: username, Email: username + "@example.com"})
	require.NoError(t, err)
	token, err := e.tokens.Generate(u)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) saveProfile(t *testing.T, userID int64, form models.ProfileForm) {
	t.Helper()
	_, err := e.store.UpsertProfile(context.Background(), userID, form)
	require.NoError(t, err)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

// decodeData unwraps the response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst), string(env.Data))
	}
	return env
}

func ptr[T any](v T) *T { return &v }

// brokenProfiles fails every call, standing in for an unavailable database.
type brokenProfiles struct{}

var errDatabaseDown = errors.New("database down")

func (brokenProfiles) GetProfile(context.Context, int64) (models.Profile, error) {
	return models.Profile{}, errDatabaseDown
}

func (brokenProfiles) UpsertProfile(context.Context, int64, models.ProfileForm) (models.Profile, error) {
	return models.Profile{}, errDatabaseDown
}
