package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gaitcgm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gaitcgm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gaitcgm version %s\n", strings.TrimSpace(gaitcgm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
