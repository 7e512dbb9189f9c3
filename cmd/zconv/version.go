package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/zconv"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of zconv",
	// Printing the version needs no configuration.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "zconv version %s\n", strings.TrimSpace(zconv.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
