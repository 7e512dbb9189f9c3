package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/presentation/graph"
	"github.com/aretw0/zconv/pkg/adapters/memory"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a Mermaid diagram of the page's event bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, _ := cmd.Flags().GetString("active")

		// Binding needs no network; the console is never driven.
		c, err := zconv.New(memory.NewDocument(), consoleOptions()...)
		if err != nil {
			return err
		}
		var overlay *graph.Overlay
		if active != "" {
			overlay = &graph.Overlay{Active: active}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(c.Bindings(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("active", "", "element to highlight")
}
