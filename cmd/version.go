package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GrafikVersion is the current version of grafik
const GrafikVersion = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of grafik",
	Long:  "Print the version number of grafik",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "grafik version %s\n", GrafikVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
