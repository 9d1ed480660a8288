// Package main provides the uvts CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables progress logging to stderr
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uvts",
	Short: "Publication list processing for research evaluation",
	Long: `uvts processes Web of Science publication exports for accreditation
and evaluation paperwork.

It merges exported record files into one deduplicated publication list,
matches journals against the UEFISCDI scored-journal registry by ISSN,
aggregates citations from indexed venues and renders the scoring sheets.
All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log progress to stderr")
	rootCmd.Version = Version
}

// buildLogger returns the process logger: development logging on stderr when
// --verbose is set, silent otherwise.
func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
