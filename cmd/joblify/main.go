// Package main provides the entry point for the Joblify HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "joblify",
	Short: "Joblify HTTP API Server",
	Long:  "Joblify is a job posting and applicant tracking service with AI-assisted application scoring and subscription billing, exposed via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
