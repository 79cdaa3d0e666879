package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mahoraga/mahoraga-access/internal/provision"
	"github.com/mahoraga/mahoraga-access/internal/report"
)

// ProvisionCmd protects the worker endpoint with Cloudflare Access
var ProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Protect the worker endpoint with Cloudflare Access",
	Long: `Provision Cloudflare Access for the configured worker endpoint.

Lists existing Access applications first: if one already protects the
worker's domain, nothing is created and the run succeeds (safe to rerun).
Otherwise it enables the One-Time PIN identity provider, creates the
Access application, and attaches a policy.

Policy selection:
  MAHORAGA_ALLOWED_EMAILS set    allow only the listed addresses
  MAHORAGA_ALLOWED_EMAILS unset  allow anyone via emailed one-time PIN

Environment:
  CLOUDFLARE_API_TOKEN      API token (required)
  CLOUDFLARE_ACCOUNT_ID     Account ID (required)
  MAHORAGA_WORKER_URL       Worker endpoint to protect (required)
  MAHORAGA_ALLOWED_EMAILS   Comma-separated allowlist (optional)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cf, err := loadRuntime(true)
		if err != nil {
			return err
		}

		ctx, cancel := runContext()
		defer cancel()

		p := provision.New(cf, cfg, report.New(os.Stdout))
		return p.Run(ctx)
	},
}
