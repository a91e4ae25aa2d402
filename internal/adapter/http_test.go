// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/models"
)

const testAPIKey = "anon-key"

// newTestAdapter creates an httpDataService pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpDataService {
	t.Helper()
	adapterCfg := config.ClientAdapter{
		HTTPAddress:    serverURL,
		APIKey:         testAPIKey,
		RequestTimeout: 5 * time.Second,
	}

	a, err := NewHTTPDataService(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpDataService)
}

// newBackend starts an httptest server with routes registered by fn. Every
// route checks the apikey header.
func newBackend(t *testing.T, fn func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, testAPIKey, req.Header.Get("apikey"))
			next.ServeHTTP(w, req)
		})
	})
	fn(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sampleWriteup(slug string) models.Writeup {
	return models.Writeup{
		ID:         uuid.New(),
		Title:      "Lame",
		Slug:       slug,
		Platform:   models.PlatformHTB,
		Difficulty: models.DifficultyEasy,
		Status:     models.StatusCompleted,
		Tags:       []string{"smb"},
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Published:  true,
	}
}

// ── constructor ──────────────────────────────────────────────────────────────

func TestNewHTTPDataService_InvalidAddress(t *testing.T) {
	_, err := NewHTTPDataService(config.ClientAdapter{HTTPAddress: "  "}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("project.example.co/")
	require.NoError(t, err)
	assert.Equal(t, "https://project.example.co", got)

	got, err = normalizeBaseURL("http://localhost:54321")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:54321", got)
}

// ── ListWriteups ─────────────────────────────────────────────────────────────

func TestListWriteups_Success(t *testing.T) {
	want := []models.Writeup{sampleWriteup("lame"), sampleWriteup("blue")}

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/rest/v1/writeups", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "*", req.URL.Query().Get("select"))
			assert.Equal(t, "created_at.desc", req.URL.Query().Get("order"))
			assert.Equal(t, "Bearer "+testAPIKey, req.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, want)
		})
	})

	got, err := newTestAdapter(t, srv.URL).ListWriteups(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListWriteups_EmptyIsNotNil(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/rest/v1/writeups", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, []models.Writeup{})
		})
	})

	got, err := newTestAdapter(t, srv.URL).ListWriteups(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListWriteups_RemoteError(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/rest/v1/writeups", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"code":    "XX000",
				"message": "database unavailable",
			})
		})
	})

	_, err := newTestAdapter(t, srv.URL).ListWriteups(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "XX000", remoteErr.Code)
	assert.Equal(t, "database unavailable", remoteErr.Message)
}

func TestListWriteups_DecodeError(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/rest/v1/writeups", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{not json"))
		})
	})

	_, err := newTestAdapter(t, srv.URL).ListWriteups(context.Background())
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestListWriteups_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).ListWriteups(context.Background())
	assert.ErrorIs(t, err, ErrRequestFailed)
}

// ── GetWriteupBySlug ─────────────────────────────────────────────────────────

func TestGetWriteupBySlug(t *testing.T) {
	rows := map[string][]models.Writeup{
		"eq.lame": {sampleWriteup("lame")},
		"eq.dup":  {sampleWriteup("dup"), sampleWriteup("dup")},
	}

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/rest/v1/writeups", func(w http.ResponseWriter, req *http.Request) {
			found, ok := rows[req.URL.Query().Get("slug")]
			if !ok {
				found = []models.Writeup{}
			}
			writeJSON(w, http.StatusOK, found)
		})
	})
	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		got, err := a.GetWriteupBySlug(ctx, "lame")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "lame", got.Slug)
	})

	t.Run("absent", func(t *testing.T) {
		got, err := a.GetWriteupBySlug(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("more than one row", func(t *testing.T) {
		_, err := a.GetWriteupBySlug(ctx, "dup")
		assert.ErrorIs(t, err, ErrMultipleRows)
	})

	t.Run("empty slug", func(t *testing.T) {
		_, err := a.GetWriteupBySlug(ctx, "")
		assert.ErrorIs(t, err, ErrEmptySlug)
	})
}

// ── SignIn ───────────────────────────────────────────────────────────────────

func TestSignIn_Success(t *testing.T) {
	userID := uuid.New()
	expiresAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "password", req.URL.Query().Get("grant_type"))

			var body passwordGrant
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "neo@example.com", body.Email)
			assert.Equal(t, "secret1", body.Password)

			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "access",
				"refresh_token": "refresh",
				"token_type":    "bearer",
				"expires_in":    3600,
				"expires_at":    expiresAt.Unix(),
				"user": map[string]any{
					"id":            userID,
					"email":         "neo@example.com",
					"user_metadata": map[string]any{"display_name": "Neo"},
				},
			})
		})
	})

	got, err := newTestAdapter(t, srv.URL).SignIn(context.Background(), models.Credentials{Email: "neo@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, expiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, userID, got.User.ID)
	assert.Equal(t, "Neo", got.User.DisplayName())
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code":       400,
				"error_code": "invalid_credentials",
				"msg":        "Invalid login credentials",
			})
		})
	})

	_, err := newTestAdapter(t, srv.URL).SignIn(context.Background(), models.Credentials{Email: "a@b.co", Password: "wrong!"})

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusBadRequest, remoteErr.Status)
	assert.Equal(t, CodeInvalidCredentials, remoteErr.Code)
	assert.Equal(t, "Invalid login credentials", remoteErr.Message)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSignIn_LegacyErrorShape(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":             "invalid_grant",
				"error_description": "Invalid login credentials",
			})
		})
	})

	_, err := newTestAdapter(t, srv.URL).SignIn(context.Background(), models.Credentials{Email: "a@b.co", Password: "wrong!"})

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, CodeInvalidGrant, remoteErr.Code)
	assert.Equal(t, "Invalid login credentials", remoteErr.Message)
}

func TestSignIn_ExpiryFromJWT(t *testing.T) {
	exp := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "exp": exp.Unix()}).
		SignedString([]byte("k"))
	require.NoError(t, err)

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"access_token": token, "refresh_token": "r"})
		})
	})

	got, err := newTestAdapter(t, srv.URL).SignIn(context.Background(), models.Credentials{Email: "a@b.co", Password: "secret"})

	require.NoError(t, err)
	assert.True(t, exp.Equal(got.ExpiresAt))
}

func TestSignIn_ExpiresIn(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "opaque", "expires_in": 60})
		})
	})

	a := newTestAdapter(t, srv.URL)
	a.now = func() time.Time { return now }

	got, err := a.SignIn(context.Background(), models.Credentials{Email: "a@b.co", Password: "secret"})

	require.NoError(t, err)
	assert.True(t, now.Add(time.Minute).Equal(got.ExpiresAt))
}

// ── SignUp ───────────────────────────────────────────────────────────────────

func TestSignUp_WithSession(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/signup", func(w http.ResponseWriter, req *http.Request) {
			var body signUpRequest
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "Trinity", body.Data.DisplayName)

			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "access",
				"refresh_token": "refresh",
				"expires_at":    time.Now().Add(time.Hour).Unix(),
				"user":          map[string]any{"id": uuid.New(), "email": body.Email},
			})
		})
	})

	got, err := newTestAdapter(t, srv.URL).SignUp(context.Background(), models.Credentials{
		Email:       "trinity@example.com",
		Password:    "secret1",
		DisplayName: "Trinity",
	})

	require.NoError(t, err)
	assert.True(t, got.Active())
	assert.Equal(t, "trinity@example.com", got.User.Email)
}

func TestSignUp_ConfirmationPending(t *testing.T) {
	id := uuid.New()
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/signup", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": id, "email": "trinity@example.com"})
		})
	})

	got, err := newTestAdapter(t, srv.URL).SignUp(context.Background(), models.Credentials{Email: "trinity@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.False(t, got.Active())
	assert.Equal(t, id, got.User.ID)
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/signup", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"code":       422,
				"error_code": "user_already_exists",
				"msg":        "User already registered",
			})
		})
	})

	_, err := newTestAdapter(t, srv.URL).SignUp(context.Background(), models.Credentials{Email: "a@b.co", Password: "secret1"})

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, CodeUserAlreadyExists, remoteErr.Code)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

// ── SignOut / GetUser / RefreshSession ───────────────────────────────────────

func TestSignOut_SendsBearer(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/logout", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		})
	})

	err := newTestAdapter(t, srv.URL).SignOut(context.Background(), "user-token")
	require.NoError(t, err)
}

func TestSignOut_Unauthorized(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/logout", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})

	err := newTestAdapter(t, srv.URL).SignOut(context.Background(), "stale")

	require.ErrorIs(t, err, ErrUnauthorized)
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "Unauthorized", remoteErr.Message)
}

func TestGetUser(t *testing.T) {
	id := uuid.New()
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/auth/v1/user", func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") != "Bearer good" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "error_code": "bad_jwt", "msg": "invalid JWT"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": id, "email": "neo@example.com"})
		})
	})
	a := newTestAdapter(t, srv.URL)

	user, err := a.GetUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = a.GetUser(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshSession(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "refresh_token", req.URL.Query().Get("grant_type"))

			var body refreshGrant
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			if body.RefreshToken != "r1" {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error_code": "refresh_token_not_found", "msg": "Invalid Refresh Token"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "a2",
				"refresh_token": "r2",
				"expires_at":    time.Now().Add(time.Hour).Unix(),
			})
		})
	})
	a := newTestAdapter(t, srv.URL)

	got, err := a.RefreshSession(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AccessToken)
	assert.Equal(t, "r2", got.RefreshToken)

	_, err = a.RefreshSession(context.Background(), "old")
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, CodeRefreshNotFound, remoteErr.Code)
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestParseRemoteError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
		sentinel error
	}{
		{name: "plain text", status: 502, body: "upstream down", wantMsg: "upstream down", sentinel: ErrBadGateway},
		{name: "empty body", status: 503, body: "", wantMsg: "Service Unavailable", sentinel: ErrServiceUnavailable},
		{name: "postgrest", status: 404, body: `{"code":"PGRST205","message":"relation not found"}`, wantCode: "PGRST205", wantMsg: "relation not found", sentinel: ErrNotFound},
		{name: "numeric code ignored", status: 429, body: `{"code":429,"msg":"rate limited"}`, wantMsg: "rate limited", sentinel: ErrTooManyRequests},
		{name: "unknown status", status: 418, body: `{"message":"teapot"}`, wantMsg: "teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseRemoteError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantMsg, err.Message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			} else {
				assert.False(t, errors.Is(err, ErrBadRequest))
			}
		})
	}
}
