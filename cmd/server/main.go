package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "review-sentiment-api",
	Short: "Review sentiment analysis web service",
	Long: `Review sentiment analysis web service.

Classifies single reviews and CSV batches as Positive, Negative or Neutral,
stores them, and serves history and aggregate counts over HTTP.

Configuration is read from the environment (SERVER_ADDR, DB_DRIVER, DB_PATH, ...).
Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
