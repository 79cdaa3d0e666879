// mahoraga-access - one-shot Cloudflare Access provisioning for the
// MAHORAGA trading agent worker endpoint.
//
// Reads credentials and the worker URL from the environment, then creates
// the Access application and policy if the domain is not already protected.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mahoraga/mahoraga-access/cmd/mahoraga-access/cmd"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "mahoraga-access",
		Short: "Provision Cloudflare Access for the MAHORAGA worker",
		Long: `mahoraga-access puts the MAHORAGA trading agent worker behind
Cloudflare Access (SSO / one-time PIN email verification).

TYPICAL WORKFLOW:
  1. mahoraga-access verify      # Check credentials before touching anything
  2. mahoraga-access provision   # Create the Access application and policy
  3. mahoraga-access status      # Confirm protection (and catch partial runs)

Safe to rerun: provision is a no-op when the domain is already protected.`,
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			cmd.SetupLogging()
		},
	}

	cmd.SetVersion(Version)
	cmd.RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.ProvisionCmd)
	rootCmd.AddCommand(cmd.StatusCmd)
	rootCmd.AddCommand(cmd.VerifyCmd)
	rootCmd.AddCommand(cmd.VersionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
