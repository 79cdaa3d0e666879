package cloudflare

import (
	"context"
	"fmt"
)

// TokenStatus is the result of a token verification call.
type TokenStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Account is the account record behind the configured account ID.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VerifyToken checks that the configured API token is valid and active.
func (c *Client) VerifyToken(ctx context.Context) (*TokenStatus, error) {
	var status TokenStatus
	if err := c.get(ctx, "/user/tokens/verify", &status); err != nil {
		return nil, fmt.Errorf("verify api token: %w", err)
	}
	return &status, nil
}

// VerifyAccount checks that the token can reach the configured account and
// returns its details.
func (c *Client) VerifyAccount(ctx context.Context) (*Account, error) {
	var account Account
	path := fmt.Sprintf("/accounts/%s", c.accountID)
	if err := c.get(ctx, path, &account); err != nil {
		return nil, fmt.Errorf("verify account access: %w", err)
	}
	return &account, nil
}
