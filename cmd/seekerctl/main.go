// Package main implements seekerctl, the terminal client for job-seeker profiles.
package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "seekerctl",
	Short:         "Manage your job-seeker profile from the terminal",
	Long:          "seekerctl signs in with an access token, walks you through the multi-step candidate form and shows your saved profile.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logx.SetLevel(logx.ParseLevel(logLevel))
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
