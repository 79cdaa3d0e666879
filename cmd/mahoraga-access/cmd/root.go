package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mahoraga/mahoraga-access/internal/cloudflare"
	"github.com/mahoraga/mahoraga-access/internal/config"
)

var version = "dev"

// SetVersion sets the version string (called from main)
func SetVersion(v string) {
	version = v
}

var verbose bool

// RegisterGlobalFlags attaches flags shared by all subcommands to the root.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log individual API calls")
}

// SetupLogging configures zerolog for CLI use. Normal runs show only
// reporter output; --verbose adds per-request debug lines on stderr.
func SetupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// runTimeout bounds one full provisioning run. Individual requests are
// additionally capped by the API client's own timeout.
const runTimeout = 60 * time.Second

func runContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), runTimeout)
}

// loadRuntime loads configuration and builds the API client, printing one
// remediation message per missing required value. needWorkerURL is false
// for commands that only touch credentials.
func loadRuntime(needWorkerURL bool) (*config.Config, *cloudflare.Client, error) {
	cfg := config.Load()

	missing := cfg.MissingRequired()
	if !needWorkerURL {
		filtered := missing[:0]
		for _, f := range missing {
			if f.Key != config.KeyWorkerURL {
				filtered = append(filtered, f)
			}
		}
		missing = filtered
	}

	if len(missing) > 0 {
		for _, f := range missing {
			fmt.Fprintf(os.Stderr, "ERROR: %s is not set\n", f.Key)
			fmt.Fprintf(os.Stderr, "       %s\n", f.Hint)
		}
		return nil, nil, fmt.Errorf("missing required configuration")
	}

	return cfg, cloudflare.New(cfg.APIToken, cfg.AccountID), nil
}
