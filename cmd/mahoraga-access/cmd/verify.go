package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mahoraga/mahoraga-access/internal/report"
)

// VerifyCmd checks the configured Cloudflare credentials
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the Cloudflare API token and account ID",
	Long: `Verify the configured credentials without touching Access resources.

Calls the token verification endpoint, then fetches the account to confirm
the token can reach it. Useful before a first provision run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cf, err := loadRuntime(false)
		if err != nil {
			return err
		}

		ctx, cancel := runContext()
		defer cancel()

		rep := report.New(os.Stdout)
		rep.Section("Credential check")

		status, err := cf.VerifyToken(ctx)
		if err != nil {
			return err
		}
		rep.Successf("API token is %s", status.Status)

		account, err := cf.VerifyAccount(ctx)
		if err != nil {
			return err
		}
		rep.Successf("Account reachable: %s (%s)", account.Name, account.ID)
		return nil
	},
}
