// ABOUTME: Root command for the ln2-sizer CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "LN2_SIZER_API_URL"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "ln2-sizer",
	Short: "CLI for the AMR LN2 generator sizing service",
	Long: `ln2-sizer sizes a benchtop liquid nitrogen generator built from a hollow-fiber
membrane nitrogen separator and a magnetocaloric cryocooler.

It talks to the sizing API for scripted use and runs the calculator in-process
for the interactive TUI.

Environment Variables:
  LN2_SIZER_API_URL     Backend API URL (default: http://localhost:8080)
  LN2_SIZER_DEBUG_LOG   Write TUI debug logs to this file`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides "+apiURLEnv+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv(apiURLEnv); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
