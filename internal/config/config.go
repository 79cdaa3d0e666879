// Package config loads provisioning configuration from the environment.
//
// Values come from environment variables, with an optional .env file in the
// working directory as a fallback for local runs. Real environment variables
// always win over .env entries.
//
// Environment variables:
//   - CLOUDFLARE_API_TOKEN: Bearer credential for all API calls (required)
//   - CLOUDFLARE_ACCOUNT_ID: Account scoping all API calls (required)
//   - MAHORAGA_WORKER_URL: The worker endpoint to protect (required)
//   - MAHORAGA_ALLOWED_EMAILS: Comma-separated allowlist (optional)
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Environment variable keys used throughout the codebase
const (
	KeyAPIToken      = "CLOUDFLARE_API_TOKEN"
	KeyAccountID     = "CLOUDFLARE_ACCOUNT_ID"
	KeyWorkerURL     = "MAHORAGA_WORKER_URL"
	KeyAllowedEmails = "MAHORAGA_ALLOWED_EMAILS"
)

// DefaultEnvFile is the fallback env file read from the working directory.
const DefaultEnvFile = ".env"

// Config holds everything a single provisioning run needs. Orchestration
// code takes this struct as input and never reads the process environment
// itself.
type Config struct {
	APIToken      string
	AccountID     string
	WorkerURL     string
	AllowedEmails []string
}

// Field describes one configuration value and how to remedy its absence.
type Field struct {
	Key      string
	Required bool
	Hint     string
}

// Fields lists all configuration values with their metadata in display order.
var Fields = []Field{
	{Key: KeyAPIToken, Required: true, Hint: "Create an API token with Access: Apps and Policies edit permission at https://dash.cloudflare.com/profile/api-tokens"},
	{Key: KeyAccountID, Required: true, Hint: "Find your Account ID in the dashboard URL: https://dash.cloudflare.com/<ACCOUNT_ID>/..."},
	{Key: KeyWorkerURL, Required: true, Hint: "The deployed worker endpoint, e.g. https://mahoraga.example.workers.dev"},
	{Key: KeyAllowedEmails, Required: false, Hint: "Comma-separated email allowlist; leave unset to allow everyone via one-time PIN"},
}

// Load reads configuration from the environment, falling back to ./.env.
func Load() *Config {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom reads configuration from the environment, falling back to the
// given env file. A missing file is not an error; validation of required
// values is left to MissingRequired so every absent value can be reported
// at once.
func LoadFrom(envFile string) *Config {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional

	// Environment variables take precedence over the file.
	v.AutomaticEnv()

	return &Config{
		APIToken:      v.GetString(KeyAPIToken),
		AccountID:     v.GetString(KeyAccountID),
		WorkerURL:     v.GetString(KeyWorkerURL),
		AllowedEmails: ParseEmailList(v.GetString(KeyAllowedEmails)),
	}
}

// MissingRequired returns the required fields that have no value, in
// declaration order. An empty result means the config is runnable.
func (c *Config) MissingRequired() []Field {
	values := map[string]string{
		KeyAPIToken:  c.APIToken,
		KeyAccountID: c.AccountID,
		KeyWorkerURL: c.WorkerURL,
	}

	var missing []Field
	for _, f := range Fields {
		if f.Required && values[f.Key] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ParseEmailList splits a comma-separated allowlist, trimming whitespace and
// dropping empty entries. Order is preserved. An empty or absent list means
// "allow everyone via one-time PIN", not "allow no one".
func ParseEmailList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var emails []string
	for _, part := range strings.Split(raw, ",") {
		if email := strings.TrimSpace(part); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
