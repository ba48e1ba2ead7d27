package main

import (
	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the step order as a Mermaid diagram",
	Long:  `Builds the configured model and outputs a Mermaid diagram (graph TD) of its steps and data dependencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		opts.Quiet = true
		return cli.Graph(opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
