// Package identity resolves identity-provider ID tokens to the account
// email they were issued for, using the accounts:lookup endpoint.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/pkg/http"
)

// ErrInvalidToken covers every reason a token cannot be resolved to an email.
var ErrInvalidToken = errors.New("identity: invalid token")

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL   string
	apiKey    string
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
}

// New builds a Client. baseURL is the API origin, without a trailing slash.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		timeout:   5 * time.Second,
		attempts:  2,
		retryWait: 100 * time.Millisecond,
	}
}

// FromConfig builds a Client from IDENTITY_BASE_URL and IDENTITY_API_KEY.
func FromConfig() *Client {
	return New(config.IdentityBaseURL(), config.IdentityAPIKey())
}

type lookupResponse struct {
	Users []struct {
		Email string `json:"email"`
	} `json:"users"`
}

// Lookup returns the email of the first account the token belongs to.
// A non-2xx answer or a missing email is ErrInvalidToken. A transport
// failure is retried once, then returned wrapped.
func (c *Client) Lookup(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", ErrInvalidToken
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("identity: api key not configured")
	}

	resp, err := http.Post(ctx, c.baseURL+"/v1/accounts:lookup").
		Query("key", c.apiKey).
		Body(map[string]string{"idToken": idToken}).
		Timeout(c.timeout).
		Retry(c.attempts, c.retryWait).
		Send()
	if err != nil {
		return "", fmt.Errorf("identity: lookup: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("%w: status %d", ErrInvalidToken, resp.StatusCode)
	}

	var out lookupResponse
	if err := resp.JSON(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(out.Users) == 0 || out.Users[0].Email == "" {
		return "", ErrInvalidToken
	}
	return out.Users[0].Email, nil
}
