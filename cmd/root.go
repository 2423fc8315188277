/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; the tools hang off it.
var rootCmd = &cobra.Command{
	Use:   "e20",
	Short: "The E20 toolchain",
	Long: `E20 is the toolchain for the E20 processor: an assembler
that produces machine code files, and a simulator that executes
them, optionally modeling a one- or two-level data cache.
`,
	SilenceUsage: true,
}

// Execute runs the selected subcommand. Called once, from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
