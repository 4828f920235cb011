// Package main provides the entry point for the resume tailor HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor_server",
	Short: "Resume Tailor HTTP API Server",
	Long:  "Resume Tailor generates region-aware LaTeX resumes and cover letters tailored to job postings via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
