package userstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// Client implements domain.UserStore over the user-store REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a user-store client. timeout caps each call; the caller
// can cancel earlier through the context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    *loginUser `json:"user"`
}

// Authenticate implements domain.UserStore. Only a well-formed 2xx payload
// with success:true, a token and a user block counts as success; everything
// else is an error for the session manager to fold into its boolean result.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrInvalidCredentials
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.ErrMalformedResponse
	}
	if !payload.Success || payload.Token == "" || payload.User == nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.AuthResult{
		Token: payload.Token,
		Profile: &domain.Profile{
			FirstName: payload.User.FirstName,
			LastName:  payload.User.LastName,
			Role:      payload.User.Role,
		},
	}, nil
}

// Accounts implements domain.UserStore. The bearer token is forwarded
// verbatim; the client never inspects it.
func (c *Client) Accounts(ctx context.Context, username, token string) ([]domain.Account, error) {
	endpoint := c.baseURL + "/accounts"
	if username != "" {
		endpoint += "?user=" + url.QueryEscape(username)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("accounts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("accounts request returned status %d", resp.StatusCode)
	}

	var accounts []domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, domain.ErrMalformedResponse
	}
	return accounts, nil
}

var _ domain.UserStore = (*Client)(nil)
