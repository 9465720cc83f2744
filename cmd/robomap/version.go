package main

import (
	"fmt"

	"github.com/philipparndt/robomap/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "robomap %s\n", version.GetFullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
