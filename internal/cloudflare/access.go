package cloudflare

import (
	"context"
	"fmt"
)

// ListAccessApps returns all Access applications for the account.
func (c *Client) ListAccessApps(ctx context.Context) ([]AccessApplication, error) {
	var apps []AccessApplication
	path := fmt.Sprintf("/accounts/%s/access/apps", c.accountID)
	if err := c.get(ctx, path, &apps); err != nil {
		return nil, fmt.Errorf("list access applications: %w", err)
	}
	return apps, nil
}

// CreateAccessApp creates a new Access application.
func (c *Client) CreateAccessApp(ctx context.Context, params CreateAccessAppParams) (*AccessApplication, error) {
	var app AccessApplication
	path := fmt.Sprintf("/accounts/%s/access/apps", c.accountID)
	if err := c.post(ctx, path, params, &app); err != nil {
		return nil, fmt.Errorf("create access application: %w", err)
	}
	return &app, nil
}

// ListAccessPolicies returns the policies attached to an Access application.
func (c *Client) ListAccessPolicies(ctx context.Context, appID string) ([]AccessPolicy, error) {
	var policies []AccessPolicy
	path := fmt.Sprintf("/accounts/%s/access/apps/%s/policies", c.accountID, appID)
	if err := c.get(ctx, path, &policies); err != nil {
		return nil, fmt.Errorf("list access policies: %w", err)
	}
	return policies, nil
}

// CreateAccessPolicy creates a policy under an Access application.
func (c *Client) CreateAccessPolicy(ctx context.Context, appID string, params CreateAccessPolicyParams) (*AccessPolicy, error) {
	var policy AccessPolicy
	path := fmt.Sprintf("/accounts/%s/access/apps/%s/policies", c.accountID, appID)
	if err := c.post(ctx, path, params, &policy); err != nil {
		return nil, fmt.Errorf("create access policy: %w", err)
	}
	return &policy, nil
}

// EnableOTP creates the account-level One-Time PIN identity provider.
// The provider is a singleton; callers should treat an already-exists
// failure (see IsAlreadyExists) as success.
func (c *Client) EnableOTP(ctx context.Context) (*IdentityProvider, error) {
	params := IdentityProvider{
		Name:   "One-Time PIN",
		Type:   "onetimepin",
		Config: map[string]any{},
	}

	var idp IdentityProvider
	path := fmt.Sprintf("/accounts/%s/access/identity_providers", c.accountID)
	if err := c.post(ctx, path, params, &idp); err != nil {
		return nil, err
	}
	return &idp, nil
}
