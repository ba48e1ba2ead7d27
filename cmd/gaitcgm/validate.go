package main

import (
	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the pipeline for consistency",
	Long:  `Reports steps that read outputs produced later or never, and inputs missing from the data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		opts.Quiet = true
		return cli.Validate(opts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
