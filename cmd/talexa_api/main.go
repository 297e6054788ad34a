// Package main provides the entry point for the Talexa recruitment API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talexa_api",
	Short: "Talexa recruitment API server",
	Long:  "Talexa manages job postings and candidate applications, extracting structured profiles from uploaded resumes and scoring them against job requirements.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
