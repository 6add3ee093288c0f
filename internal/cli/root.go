// Package cli implements the scrape command line using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract structured records from a web page with an LLM",
	Long: `scrape renders a web page in a headless browser, splits its visible text
into chunks, asks a language model for the requested fields and writes the
records as JSON, CSV and XLSX.

Usage:
  scrape run <url> --fields title,price [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
