// Package authclient is the backend service's HTTP client for the auth
// service's verify endpoint. Any transport failure is treated the same as an
// invalid token: the backend fails closed rather than trusting what it cannot
// verify.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tanmayd/user_platform_app/internal/apperrors"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
)

// Client verifies bearer tokens against the auth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new auth service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Ensure Client implements portssvc.TokenVerifier
var _ portssvc.TokenVerifier = (*Client)(nil)

// Verify posts the token to the auth service and returns the asserted
// identity. Any error, transport or otherwise, maps to ErrUnauthorized.
func (c *Client) Verify(ctx context.Context, tokenString string) (*domain.Identity, error) {
	url := c.baseURL + "/api/auth/verify"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", apperrors.ErrUnauthorized)
	}
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrUnauthorized
	}

	var identity domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if identity.Email == "" {
		return nil, apperrors.ErrUnauthorized
	}

	return &identity, nil
}
