// ABOUTME: Non-interactive scenario comparison command
// ABOUTME: Compares a baseline and proposed sizing, by default the recuperator upgrade

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/client"
)

var (
	compareInputs      sizingFlags
	proposedRevision   string
	proposedProduction float64
	proposedPurity     float64
	proposedPressure   float64
	compareLocal       bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare baseline vs proposed sizing",
	Long: `Run a what-if comparison without the interactive TUI.

The baseline uses --production, --purity, --pressure and --revision. The proposed
side copies the baseline and overrides whatever --proposed-* flags are set. With
no overrides this compares the baseline formulas against the recuperated ones.

Example:
  ln2-sizer compare --production 20 --proposed-pressure 11 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runCompare(ctx, os.Stdout, compareInput(), compareLocal, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareInputs.register(compareCmd)
	compareCmd.Flags().StringVar(&proposedRevision, "proposed-revision", models.RevisionRecuperated, "Formula revision for the proposed side")
	compareCmd.Flags().Float64Var(&proposedProduction, "proposed-production", 0, "Proposed production in L/day (0 keeps the baseline value)")
	compareCmd.Flags().Float64Var(&proposedPurity, "proposed-purity", 0, "Proposed residual oxygen % (0 keeps the baseline value)")
	compareCmd.Flags().Float64Var(&proposedPressure, "proposed-pressure", 0, "Proposed feed pressure in bar (0 keeps the baseline value)")
	compareCmd.Flags().BoolVar(&compareLocal, "local", false, "Compute in-process instead of calling the API")
}

// compareInput builds the scenario from the command flags
func compareInput() models.ScenarioInput {
	baseline := compareInputs.request()
	if baseline.Revision == "" {
		baseline.Revision = models.RevisionBaseline
	}

	proposed := baseline
	proposed.Revision = proposedRevision
	if proposedProduction > 0 {
		proposed.TargetProductionLitersPerDay = proposedProduction
	}
	if proposedPurity > 0 {
		proposed.OxygenPurityPercent = proposedPurity
	}
	if proposedPressure > 0 {
		proposed.FeedPressureBar = proposedPressure
	}

	return models.ScenarioInput{Baseline: baseline, Proposed: proposed}
}

func runCompare(ctx context.Context, w io.Writer, input models.ScenarioInput, local, jsonOut bool) error {
	if err := validateRequest(input.Baseline); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	if err := validateRequest(input.Proposed); err != nil {
		return fmt.Errorf("proposed: %w", err)
	}

	var result *models.ScenarioComparison
	if local {
		svc, err := loadService("", "")
		if err != nil {
			return err
		}
		comparison, err := services.NewScenarioCalculator(svc).Compare(input)
		if err != nil {
			return err
		}
		result = &comparison
	} else {
		var err error
		result, err = client.New(GetAPIURL()).Compare(ctx, input)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	// Human-readable output
	fmt.Fprintf(w, "Scenario Comparison\n")
	fmt.Fprintf(w, "===================\n\n")
	writeScenarioSide(w, "Baseline", result.Baseline)
	fmt.Fprintln(w)
	writeScenarioSide(w, "Proposed", result.Proposed)

	d := result.Delta
	fmt.Fprintf(w, "\nChanges:\n")
	fmt.Fprintf(w, "  Total power: %+.2f kW (%.1f%% savings)\n", d.TotalPowerKW, d.PowerSavingsPct)
	fmt.Fprintf(w, "  Feed air: %+.1f LPM\n", d.FeedAirFlowLPM)
	fmt.Fprintf(w, "  Modules: %+d\n", d.ModuleCount)
	fmt.Fprintf(w, "  Cooling load: %+.1f W\n", d.CoolingLoadWatts)

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", warn.Severity, warn.Message)
		}
	}

	return nil
}

func writeScenarioSide(w io.Writer, label string, r models.ScenarioResult) {
	fmt.Fprintf(w, "%s (%s):\n", label, r.Revision)
	fmt.Fprintf(w, "  Inputs: %s\n", r.Inputs.String())
	fmt.Fprintf(w, "  Total power: %s kW\n", r.Display.TotalPowerKW)
	fmt.Fprintf(w, "  Feed air: %s LPM\n", r.Display.FeedAirFlowLPM)
	fmt.Fprintf(w, "  Modules: %s\n", r.Display.ModuleCount)
	fmt.Fprintf(w, "  Cooling load: %s W\n", r.Display.CoolingLoadWatts)
}
