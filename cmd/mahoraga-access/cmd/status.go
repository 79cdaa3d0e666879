package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mahoraga/mahoraga-access/internal/provision"
	"github.com/mahoraga/mahoraga-access/internal/report"
)

// StatusCmd reports the current Access protection state
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the worker endpoint is protected",
	Long: `Check the Access protection state of the configured worker endpoint
without changing anything.

Unlike provision, this also lists the policies attached to the matching
Access application and warns when there are none - the state left behind
by a run that failed between application and policy creation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cf, err := loadRuntime(true)
		if err != nil {
			return err
		}

		ctx, cancel := runContext()
		defer cancel()

		p := provision.New(cf, cfg, report.New(os.Stdout))
		return p.Status(ctx)
	},
}
