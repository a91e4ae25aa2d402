package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

type fakeBackend struct {
	listCalls   atomic.Int32
	logoutCalls atomic.Int32
	user        models.User
}

func (b *fakeBackend) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/rest/v1/writeups", func(w http.ResponseWriter, _ *http.Request) {
		b.listCalls.Add(1)
		writeJSON(w, http.StatusOK, []models.Writeup{
			{ID: uuid.New(), Title: "Lame", Slug: "lame", Platform: models.PlatformHTB, Difficulty: models.DifficultyEasy, Status: models.StatusCompleted},
		})
	})
	r.Post("/auth/v1/token", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"token_type":    "bearer",
			"expires_in":    3600,
			"user":          b.user,
		})
	})
	r.Get("/auth/v1/user", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer access" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error_code": "bad_jwt", "msg": "invalid JWT"})
			return
		}
		writeJSON(w, http.StatusOK, b.user)
	})
	r.Post("/auth/v1/logout", func(w http.ResponseWriter, _ *http.Request) {
		b.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestConfig(t *testing.T, backendURL, dsn string) *config.ClientConfig {
	t.Helper()
	return &config.ClientConfig{
		App:     config.ClientApp{SessionKey: "test-session-key"},
		Adapter: config.ClientAdapter{HTTPAddress: backendURL, APIKey: "anon", RequestTimeout: 5 * time.Second},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: dsn}},
		Cache:   config.ClientCache{TTL: time.Minute},
		Workers: config.ClientWorkers{RefreshInterval: time.Hour, RefreshLeeway: 2 * time.Minute},
	}
}

func newTestApp(t *testing.T, cfg *config.ClientConfig) *App {
	t.Helper()
	a, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("test", "N/A", "N/A"), logger.Nop())
	require.NoError(t, err)
	return a
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	backend := &fakeBackend{user: models.User{ID: uuid.New(), Email: "neo@example.com"}}
	srv := httptest.NewServer(backend.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	cfg := newTestConfig(t, srv.URL, filepath.Join(t.TempDir(), "nested", "client.db"))

	first := newTestApp(t, cfg)
	first.Start(ctx)
	assert.Equal(t, service.StatusSignedOut, first.Sessions().Snapshot().Status)

	require.NoError(t, first.Sessions().SignIn(ctx, "neo@example.com", "secret1"))
	require.True(t, first.Sessions().Snapshot().SignedIn())
	require.NoError(t, first.Close())

	second := newTestApp(t, cfg)
	defer func() { assert.NoError(t, second.Close()) }()
	second.Start(ctx)

	state := second.Sessions().Snapshot()
	require.True(t, state.SignedIn())
	assert.Equal(t, "neo@example.com", state.User.Email)

	require.NoError(t, second.Sessions().SignOut(ctx))
	assert.Equal(t, int32(1), backend.logoutCalls.Load())
	assert.Equal(t, service.StatusSignedOut, second.Sessions().Snapshot().Status)
}

func TestApp_CatalogIsCached(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, srv.URL, filepath.Join(t.TempDir(), "client.db")))
	defer func() { assert.NoError(t, a.Close()) }()
	a.Start(ctx)

	for i := 0; i < 3; i++ {
		list, err := a.Catalog().Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, int32(1), backend.listCalls.Load())

	a.Catalog().Refresh()
	_, err := a.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), backend.listCalls.Load())
}

func TestNewApp_EmptySessionKey(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1", filepath.Join(t.TempDir(), "client.db"))
	cfg.App.SessionKey = ""

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}
