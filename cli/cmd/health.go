// ABOUTME: Health command for the ln2-sizer CLI
// ABOUTME: Checks backend connectivity, calibration, and cache status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the sizing backend and report its calibration table, revisions, and cache.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	cal := resp.Calibration
	tiers := make([]string, len(cal.PressureTiers))
	for i, p := range cal.PressureTiers {
		tiers[i] = fmt.Sprintf("%g", p)
	}

	return fmt.Sprintf(`Backend:      %s
Status:       %s
Calibration:  %s %s (%s)
Tiers (bar):  %s (default %g)
Revisions:    %s (default %s)
Cache:        %d entries, %d hits, %d misses`,
		url, resp.Status,
		cal.Model, cal.Version, cal.Source,
		strings.Join(tiers, ", "), cal.DefaultPressure,
		strings.Join(resp.Revisions, ", "), resp.DefaultRevision,
		resp.Cache.Entries, resp.Cache.Hits, resp.Cache.Misses)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *models.HealthResponse) string {
	output := map[string]interface{}{
		"backend":          url,
		"status":           resp.Status,
		"calibration":      resp.Calibration,
		"default_revision": resp.DefaultRevision,
		"revisions":        resp.Revisions,
		"cache":            resp.Cache,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
