package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/utils"
	"github.com/MKhiriev/go-writeups/models"
)

const (
	pathWriteups = "/rest/v1/writeups"
	pathToken    = "/auth/v1/token"
	pathSignUp   = "/auth/v1/signup"
	pathLogout   = "/auth/v1/logout"
	pathUser     = "/auth/v1/user"
)

type httpDataService struct {
	client *utils.HTTPClient
	apiKey string

	now func() time.Time

	logger *logger.Logger
}

// NewHTTPDataService constructs an HTTP/REST implementation of [DataService].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL, the
// public API key and the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPDataService(adapterCfg config.ClientAdapter, logger *logger.Logger) (DataService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.APIKey, adapterCfg.RequestTimeout)

	return &httpDataService{
		client: client,
		apiKey: adapterCfg.APIKey,
		now:    time.Now,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ListWriteups implements [DataService]. It GETs
// /rest/v1/writeups?select=*&order=created_at.desc.
func (h *httpDataService) ListWriteups(ctx context.Context) ([]models.Writeup, error) {
	resp, err := h.publicRequest(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc",
		}).
		Get(pathWriteups)
	if err != nil {
		return nil, fmt.Errorf("%w: list writeups: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	writeups := make([]models.Writeup, 0)
	if err = json.Unmarshal(resp.Body(), &writeups); err != nil {
		return nil, fmt.Errorf("%w: list writeups: %w", ErrDecodeResponse, err)
	}

	return writeups, nil
}

// GetWriteupBySlug implements [DataService]. It GETs
// /rest/v1/writeups?select=*&slug=eq.<slug> and applies maybe-single
// semantics to the returned rows.
func (h *httpDataService) GetWriteupBySlug(ctx context.Context, slug string) (*models.Writeup, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}

	resp, err := h.publicRequest(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"slug":   "eq." + slug,
		}).
		Get(pathWriteups)
	if err != nil {
		return nil, fmt.Errorf("%w: get writeup: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var rows []models.Writeup
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("%w: get writeup: %w", ErrDecodeResponse, err)
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%w: slug %q matched %d rows", ErrMultipleRows, slug, len(rows))
	}
}

// SignIn implements [DataService]. It POSTs the credentials to
// /auth/v1/token?grant_type=password.
func (h *httpDataService) SignIn(ctx context.Context, creds models.Credentials) (models.Session, error) {
	resp, err := h.publicRequest(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(passwordGrant{Email: creds.Email, Password: creds.Password}).
		Post(pathToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: sign in: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	return h.decodeSession(resp.Body())
}

// SignUp implements [DataService]. It POSTs the credentials to
// /auth/v1/signup with the display name under data.display_name.
func (h *httpDataService) SignUp(ctx context.Context, creds models.Credentials) (models.Session, error) {
	body := signUpRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Data:     models.UserMetadata{DisplayName: creds.DisplayName},
	}

	resp, err := h.publicRequest(ctx).
		SetBody(body).
		Post(pathSignUp)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: sign up: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	// with email confirmation enabled the backend answers with the bare user
	var probe struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.Unmarshal(resp.Body(), &probe); err != nil {
		return models.Session{}, fmt.Errorf("%w: sign up: %w", ErrDecodeResponse, err)
	}
	if probe.AccessToken == "" {
		var user models.User
		if err = json.Unmarshal(resp.Body(), &user); err != nil {
			return models.Session{}, fmt.Errorf("%w: sign up: %w", ErrDecodeResponse, err)
		}
		h.logger.Debug().Str("func", "httpDataService.SignUp").Msg("account created, confirmation pending")
		return models.Session{User: user}, nil
	}

	return h.decodeSession(resp.Body())
}

// SignOut implements [DataService]. It POSTs to /auth/v1/logout with the
// access token as bearer.
func (h *httpDataService) SignOut(ctx context.Context, accessToken string) error {
	resp, err := h.authedRequest(ctx, accessToken).Post(pathLogout)
	if err != nil {
		return fmt.Errorf("%w: sign out: %w", ErrRequestFailed, err)
	}

	return mapHTTPError(resp)
}

// GetUser implements [DataService]. It GETs /auth/v1/user with the access
// token as bearer.
func (h *httpDataService) GetUser(ctx context.Context, accessToken string) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx, accessToken).Get(pathUser)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: get user: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: get user: %w", ErrDecodeResponse, err)
	}

	return user, nil
}

// RefreshSession implements [DataService]. It POSTs the refresh token to
// /auth/v1/token?grant_type=refresh_token.
func (h *httpDataService) RefreshSession(ctx context.Context, refreshToken string) (models.Session, error) {
	resp, err := h.publicRequest(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(refreshGrant{RefreshToken: refreshToken}).
		Post(pathToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: refresh session: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	return h.decodeSession(resp.Body())
}

// publicRequest authorizes with the API key itself, like an anonymous
// browser client does.
func (h *httpDataService) publicRequest(ctx context.Context) *resty.Request {
	return h.authedRequest(ctx, h.apiKey)
}

func (h *httpDataService) authedRequest(ctx context.Context, token string) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// decodeSession converts a token response into a session. expires_at wins
// over expires_in; when both are missing the exp claim of the access token
// is used.
func (h *httpDataService) decodeSession(body []byte) (models.Session, error) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return models.Session{}, fmt.Errorf("%w: session: %w", ErrDecodeResponse, err)
	}

	session := models.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
		User:         tr.User,
	}

	switch {
	case tr.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(tr.ExpiresAt, 0).UTC()
	case tr.ExpiresIn > 0:
		session.ExpiresAt = h.now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	case tr.AccessToken != "":
		exp, err := utils.ExpiryFromJWT(tr.AccessToken)
		if err != nil {
			h.logger.Warn().Err(err).Str("func", "httpDataService.decodeSession").Msg("access token expiry unknown")
			break
		}
		session.ExpiresAt = exp.UTC()
	}

	return session, nil
}
