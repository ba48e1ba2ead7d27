package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline and serve the results over HTTP",
	Long:  `Runs every model once and exposes the results as a read-only JSON API, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		opts.Parallel, _ = cmd.Flags().GetInt("parallel")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.Serve(ctx, opts, ":"+port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "P", "8080", "Port to listen on")
	serveCmd.Flags().IntP("parallel", "p", 1, "Models to run concurrently")
}
