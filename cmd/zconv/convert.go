package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/zconv/internal/cli"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert one string and print the refreshed history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Convert(cmd.Context(), runOptions(cmd), args[0])
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversion history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.History(cmd.Context(), runOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd, historyCmd)
}
