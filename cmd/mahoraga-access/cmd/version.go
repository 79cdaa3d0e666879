package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionCmd prints the version
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print mahoraga-access version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
