// Package cloudflare is a thin authenticated client for the Cloudflare REST
// v4 API, covering the Access resources this tool provisions.
//
// Every response is decoded through the uniform v4 envelope
// {success, errors[], messages[], result}; a success=false envelope surfaces
// as an *APIError carrying the API's own error messages.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// BaseURL is the Cloudflare REST API base.
const BaseURL = "https://api.cloudflare.com/client/v4"

const requestTimeout = 30 * time.Second

// Client performs authenticated JSON requests against the Cloudflare API,
// scoped to a single account.
type Client struct {
	http      *resty.Client
	accountID string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// New creates a client that authenticates with the given API token and
// scopes account-level calls to the given account ID.
func New(apiToken, accountID string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(BaseURL).
		SetAuthToken(apiToken).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:      httpClient,
		accountID: accountID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccountID returns the configured account ID.
func (c *Client) AccountID() string {
	return c.accountID
}

// envelope is the uniform Cloudflare v4 response wrapper. The result payload
// stays raw here and is decoded per call site into its typed record.
type envelope struct {
	Success  bool            `json:"success"`
	Errors   []APIMessage    `json:"errors"`
	Messages []APIMessage    `json:"messages"`
	Result   json.RawMessage `json:"result"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do runs one API call and decodes the envelope. Transport and decode
// failures wrap up as plain errors; a success=false envelope becomes an
// *APIError regardless of HTTP status.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("cloudflare %s %s: %w", method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Msg("cloudflare api call")

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("cloudflare %s %s: decode response: %w", method, path, err)
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode(), Errors: env.Errors}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("cloudflare %s %s: decode result: %w", method, path, err)
		}
	}
	return nil
}
