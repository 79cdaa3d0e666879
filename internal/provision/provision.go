// Package provision orchestrates Cloudflare Access setup for the MAHORAGA
// worker endpoint: list existing applications, short-circuit when the
// domain is already protected, otherwise enable the One-Time PIN provider
// and create the application and its policy.
//
// The flow is strictly sequential and not restartable mid-sequence: a
// failure between application and policy creation leaves the application
// without a policy, and a rerun takes the already-protected short circuit.
// Status surfaces that state; Run does not repair it.
package provision

import (
	"context"
	"fmt"

	"github.com/mahoraga/mahoraga-access/internal/cloudflare"
	"github.com/mahoraga/mahoraga-access/internal/config"
	"github.com/mahoraga/mahoraga-access/internal/report"
)

const (
	appName         = "MAHORAGA Trading Agent"
	appType         = "self_hosted"
	sessionDuration = "24h"

	allowlistPolicyName = "Allowed Users"
	otpPolicyName       = "OTP Verification"
)

// Provisioner runs Access provisioning against one Cloudflare account.
type Provisioner struct {
	cf  *cloudflare.Client
	cfg *config.Config
	rep *report.Reporter
}

// New creates a provisioner. The config must already have passed
// MissingRequired validation.
func New(cf *cloudflare.Client, cfg *config.Config, rep *report.Reporter) *Provisioner {
	return &Provisioner{cf: cf, cfg: cfg, rep: rep}
}

func (p *Provisioner) dashboardURL() string {
	return fmt.Sprintf("https://one.dash.cloudflare.com/%s/access/apps", p.cf.AccountID())
}

// Run provisions Access protection for the configured worker URL. It is
// idempotent per domain: when an application already protects the domain it
// reports and returns without further calls.
func (p *Provisioner) Run(ctx context.Context) error {
	domain, err := WorkerDomain(p.cfg.WorkerURL)
	if err != nil {
		return err
	}

	p.rep.Section("Cloudflare Access setup for " + domain)

	p.rep.Stepf("Checking existing Access applications")
	apps, err := p.cf.ListAccessApps(ctx)
	if err != nil {
		return err
	}

	for _, app := range apps {
		if app.Domain == domain {
			p.rep.Successf("Access application already exists: %s (%s)", app.Name, app.ID)
			p.rep.Infof("Manage it at %s", p.dashboardURL())
			return nil
		}
	}

	p.rep.Stepf("Enabling One-Time PIN identity provider")
	if _, err := p.cf.EnableOTP(ctx); err != nil {
		if !cloudflare.IsAlreadyExists(err) {
			return fmt.Errorf("enable one-time pin provider: %w", err)
		}
		p.rep.Successf("One-Time PIN provider already enabled")
	} else {
		p.rep.Successf("One-Time PIN provider enabled")
	}

	p.rep.Stepf("Creating Access application for %s", domain)
	app, err := p.cf.CreateAccessApp(ctx, cloudflare.CreateAccessAppParams{
		Name:                    appName,
		Domain:                  domain,
		Type:                    appType,
		SessionDuration:         sessionDuration,
		AutoRedirectToIdentity:  true,
		HTTPOnlyCookieAttribute: true,
		SameSiteCookieAttribute: "lax",
	})
	if err != nil {
		return err
	}
	p.rep.Successf("Access application created: %s", app.ID)

	policy := policyParams(p.cfg.AllowedEmails)
	p.rep.Stepf("Creating Access policy %q", policy.Name)
	if _, err := p.cf.CreateAccessPolicy(ctx, app.ID, policy); err != nil {
		return err
	}
	p.rep.Successf("Access policy created")

	p.rep.Section("Done")
	p.rep.Infof("Dashboard: %s", p.dashboardURL())
	if n := len(p.cfg.AllowedEmails); n > 0 {
		p.rep.Infof("Authentication: email allowlist (%d address(es))", n)
	} else {
		p.rep.Infof("Authentication: anyone may request a one-time PIN by email")
	}
	return nil
}

// policyParams builds the policy body: one email include per allowlisted
// address, or the everyone wildcard when the allowlist is empty.
func policyParams(allowedEmails []string) cloudflare.CreateAccessPolicyParams {
	params := cloudflare.CreateAccessPolicyParams{
		Decision:   "allow",
		Require:    []cloudflare.IncludeRule{},
		Exclude:    []cloudflare.IncludeRule{},
		Precedence: 1,
	}

	if len(allowedEmails) == 0 {
		params.Name = otpPolicyName
		params.Include = []cloudflare.IncludeRule{cloudflare.EveryoneInclude()}
		return params
	}

	params.Name = allowlistPolicyName
	params.Include = make([]cloudflare.IncludeRule, 0, len(allowedEmails))
	for _, email := range allowedEmails {
		params.Include = append(params.Include, cloudflare.EmailInclude(email))
	}
	return params
}
