package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline and print a summary per trial",
	Long: `Runs every model over its trials and prints one row per trial.

With --redis the results are also published. Set GAITCGM_RESULT_KEY to a
hex-encoded 32 byte key to store them encrypted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		opts.Parallel, _ = cmd.Flags().GetInt("parallel")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.Redact, _ = cmd.Flags().GetStringSlice("redact")
		opts.EncryptionKey = os.Getenv("GAITCGM_RESULT_KEY")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.Execute(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("parallel", "p", 1, "Models to run concurrently")
	runCmd.Flags().Bool("json", false, "Print NDJSON rows instead of a table")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and warnings")
	runCmd.Flags().String("redis", "", "Publish results to this Redis URL (redis://host:port/db)")
	runCmd.Flags().StringSlice("redact", nil, "Regexp of measurement names to drop before publishing (repeatable)")

	// 'run' is the default command
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
