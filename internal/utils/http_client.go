package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HeaderAPIKey carries the backend public key on every request.
const HeaderAPIKey = "apikey"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://project.example.co", "anon", 15*time.Second)
//	resp, err := client.R().Get("/rest/v1/writeups")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient bound to baseURL. Every request sends
// apiKey in the apikey header and JSON content headers. A zero timeout leaves
// resty's default (no timeout).
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader(HeaderAPIKey, apiKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
