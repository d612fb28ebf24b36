package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ulahello/libsw/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the swatch version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "swatch %s\n", config.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
