// ABOUTME: Check command for the ln2-sizer CLI
// ABOUTME: Gates CI pipelines on power, module, and air flow limits for a sizing

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

var (
	checkInputs      sizingFlags
	checkLocal       bool
	checkCalibration string
	maxPowerKW       float64
	maxModules       int
	maxAirLPM        float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a sizing against design limits",
	Long: `Size the given inputs and exit non-zero if any limit is exceeded.
A limit of 0 disables that check; at least one limit is required.

Exit codes:
  0 - All checks passed
  1 - One or more limits exceeded
  2 - Error (connectivity, invalid input, no limits)

Example:
  ln2-sizer check --production 20 --max-power-kw 3 --max-modules 4`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkInputs.register(checkCmd)
	checkCmd.Flags().BoolVar(&checkLocal, "local", false, "Compute in-process instead of calling the API")
	checkCmd.Flags().StringVar(&checkCalibration, "calibration", "", "Calibration file for --local (YAML or JSON)")
	checkCmd.Flags().Float64Var(&maxPowerKW, "max-power-kw", 0, "Maximum total electrical power in kW")
	checkCmd.Flags().IntVar(&maxModules, "max-modules", 0, "Maximum membrane module count")
	checkCmd.Flags().Float64Var(&maxAirLPM, "max-air-lpm", 0, "Maximum feed air flow in LPM")
}

// checkResult represents the result of a single limit check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	decimals  int
	passed    bool
}

// runCheck executes the limit checks and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(maxPowerKW, maxModules, maxAirLPM); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req := checkInputs.request()
	if err := validateRequest(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := sizeRequest(ctx, req, checkLocal, checkCalibration)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(resp)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(resp, results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures limits are usable and at least one is set
func validateThresholds(power float64, modules int, air float64) error {
	if power < 0 || math.IsNaN(power) || math.IsInf(power, 0) {
		return fmt.Errorf("--max-power-kw must be a non-negative number")
	}
	if modules < 0 {
		return fmt.Errorf("--max-modules must be non-negative")
	}
	if air < 0 || math.IsNaN(air) || math.IsInf(air, 0) {
		return fmt.Errorf("--max-air-lpm must be a non-negative number")
	}
	if power == 0 && modules == 0 && air == 0 {
		return fmt.Errorf("set at least one of --max-power-kw, --max-modules, --max-air-lpm")
	}
	return nil
}

// performChecks compares the displayed values against each enabled limit
func performChecks(resp *models.SizingResponse) []checkResult {
	var results []checkResult
	rounded, err := models.ParseDisplay(resp.Display)
	if err != nil {
		rounded = models.RoundedOutputs{
			TotalPowerKW:     models.Round(resp.Outputs.TotalPowerKW, models.PowerDecimals),
			FeedAirFlowLPM:   models.Round(resp.Outputs.FeedAirFlowLPM, models.AirFlowDecimals),
			ModuleCount:      resp.Outputs.ModuleCount,
			CoolingLoadWatts: models.Round(resp.Outputs.CoolingLoadWatts, models.CoolingDecimals),
		}
	}

	if maxPowerKW > 0 {
		results = append(results, checkResult{
			name:      "Total power",
			value:     rounded.TotalPowerKW,
			threshold: maxPowerKW,
			unit:      " kW",
			decimals:  models.PowerDecimals,
			passed:    rounded.TotalPowerKW <= maxPowerKW,
		})
	}

	if maxModules > 0 {
		results = append(results, checkResult{
			name:      "Membrane modules",
			value:     float64(rounded.ModuleCount),
			threshold: float64(maxModules),
			passed:    rounded.ModuleCount <= maxModules,
		})
	}

	if maxAirLPM > 0 {
		results = append(results, checkResult{
			name:      "Feed air flow",
			value:     rounded.FeedAirFlowLPM,
			threshold: maxAirLPM,
			unit:      " LPM",
			decimals:  models.AirFlowDecimals,
			passed:    rounded.FeedAirFlowLPM <= maxAirLPM,
		})
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %s%s (limit: %s%s)\n",
			symbol, r.name,
			models.FormatFixed(r.value, r.decimals), r.unit,
			models.FormatFixed(r.threshold, r.decimals), r.unit)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) exceeded limit", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within limits", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(resp *models.SizingResponse, results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status":   status,
		"inputs":   resp.Inputs,
		"revision": resp.Revision,
		"checks":   checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
