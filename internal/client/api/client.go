// Package api is a thin HTTP client for the motoreg server. All calls use
// the JSON representation and authenticate with the access token header.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"motoreg/internal/common"
	"motoreg/internal/server/models"
)

// Client talks to the motoreg HTTP API. It holds the access token
// obtained by Login and attaches it to every subsequent request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether a login has succeeded on this client.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the cached access token.
func (c *Client) Logout() {
	c.token = ""
}

type serverEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Token   string `json:"token"`
}

// do sends a JSON request and decodes the body into out when out is
// non-nil. Non-2xx responses are turned into errors carrying the
// server's message; 401 maps onto common.ErrUnauthorized so callers can
// prompt for a fresh login.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AccessTokenHeaderName, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var env serverEnvelope
		_ = json.Unmarshal(data, &env)
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%s: %w", msg, common.ErrUnauthorized)
		}
		return fmt.Errorf("server error: %s", msg)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/register", map[string]string{
		"username": username, "password": password,
	}, nil)
}

// Login authenticates and caches the returned access token on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var env serverEnvelope
	if err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"username": username, "password": password,
	}, &env); err != nil {
		return err
	}
	c.token = env.Token
	return nil
}

// ListMotorcycles returns all records, filtered by the optional search
// substring.
func (c *Client) ListMotorcycles(ctx context.Context, search string) ([]models.Motorcycle, error) {
	path := "/motorcycles"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []models.Motorcycle
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMotorcycle returns a single record by id.
func (c *Client) GetMotorcycle(ctx context.Context, id int64) (*models.Motorcycle, error) {
	var out models.Motorcycle
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/motorcycles/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMotorcycle creates a record from a flat field map.
func (c *Client) AddMotorcycle(ctx context.Context, fields map[string]string) error {
	return c.do(ctx, http.MethodPost, "/motorcycles", fields, nil)
}

// UpdateMotorcycle replaces all fields of the record with the given id.
func (c *Client) UpdateMotorcycle(ctx context.Context, id int64, fields map[string]string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/motorcycles/%d", id), fields, nil)
}

// DeleteMotorcycle removes the record with the given id.
func (c *Client) DeleteMotorcycle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/motorcycles/%d", id), nil, nil)
}
