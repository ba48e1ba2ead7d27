package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Runs every model once and exposes the batch as MCP tools
(list_models, get_trial, get_series, get_graph, run_model).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		opts.Parallel, _ = cmd.Flags().GetInt("parallel")
		opts.Stdout = os.Stderr

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.MCP(ctx, opts, transport, port)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().IntP("port", "P", 8080, "Port for the sse transport")
	mcpCmd.Flags().IntP("parallel", "p", 1, "Models to run concurrently")
}
