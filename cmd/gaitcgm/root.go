package main

import (
	"fmt"
	"os"

	"github.com/aretw0/gaitcgm/internal/cli"
	"github.com/aretw0/gaitcgm/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gaitcgm",
	Short: "gaitcgm computes gait axes and joint angles from marker trajectories",
	Long: `gaitcgm runs the calculation pipeline over one or more subjects.
Without --data it generates synthetic walking subjects.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	f := rootCmd.PersistentFlags()
	f.StringSlice("data", nil, "Subject fixture files (YAML or JSON); one model per file")
	f.Int("subjects", 1, "Number of synthetic subjects when no --data is given")
	f.Int("frames", 120, "Frames of the first synthetic trial")
	f.StringSlice("drop-marker", nil, "Markers to omit from synthetic subjects")
	f.StringP("config", "c", "", "Model configuration file (YAML or JSON)")
	f.String("variant", "", "Variant profile (default, custom-pelvis, eye-axis)")
	f.Bool("debug", false, "Log every step to stderr")
	f.String("log-format", "text", "Log format: text or json")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) (cli.Options, error) {
	f := cmd.Flags()
	var opts cli.Options
	var err error
	if opts.DataPaths, err = f.GetStringSlice("data"); err != nil {
		return opts, err
	}
	if opts.Subjects, err = f.GetInt("subjects"); err != nil {
		return opts, err
	}
	if opts.Frames, err = f.GetInt("frames"); err != nil {
		return opts, err
	}
	if opts.DropMarkers, err = f.GetStringSlice("drop-marker"); err != nil {
		return opts, err
	}
	if opts.ConfigPath, err = f.GetString("config"); err != nil {
		return opts, err
	}
	if opts.Variant, err = f.GetString("variant"); err != nil {
		return opts, err
	}
	if opts.Debug, err = f.GetBool("debug"); err != nil {
		return opts, err
	}
	format, err := f.GetString("log-format")
	if err != nil {
		return opts, err
	}
	if opts.LogFormat, err = logging.ParseFormat(format); err != nil {
		return opts, err
	}
	opts.Stdout = cmd.OutOrStdout()
	opts.Stderr = cmd.ErrOrStderr()
	return opts, nil
}
