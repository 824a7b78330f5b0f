// ABOUTME: Size command for the ln2-sizer CLI
// ABOUTME: Computes power, air flow, module count, and cooling load for one set of inputs

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
)

var (
	sizeInputs      sizingFlags
	sizeLocal       bool
	sizeCalibration string
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a generator for one set of inputs",
	Long: `Compute total electrical power, feed air flow, membrane module count, and
cryocooler cooling load for the given production target.

Exit codes:
  0 - Sizing succeeded
  2 - Error (connectivity, invalid input, calibration)

Example:
  ln2-sizer size --production 20 --purity 1 --pressure 11 --revision recuperated`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSize(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sizeCmd)
	sizeInputs.register(sizeCmd)
	sizeCmd.Flags().BoolVar(&sizeLocal, "local", false, "Compute in-process instead of calling the API")
	sizeCmd.Flags().StringVar(&sizeCalibration, "calibration", "", "Calibration file for --local (YAML or JSON)")
}

// runSize executes one sizing and returns exit code
func runSize(ctx context.Context, w io.Writer) int {
	req := sizeInputs.request()
	if err := validateRequest(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := sizeRequest(ctx, req, sizeLocal, sizeCalibration)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatSizeHuman(resp))
	}
	return 0
}

// formatSizeHuman formats a sizing response for human readability
func formatSizeHuman(resp *models.SizingResponse) string {
	out := resp.Outputs
	var sb strings.Builder

	fmt.Fprintf(&sb, "AMR LN2 Generator: %s\n", resp.Inputs.String())
	fmt.Fprintf(&sb, "Revision:          %s\n", resp.Revision)
	if out.OperatingPoint.PressureFallback {
		fmt.Fprintf(&sb, "Note:              %g bar is not calibrated, sized at %g bar\n",
			out.OperatingPoint.RequestedPressureBar, out.OperatingPoint.PressureBar)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total power:       %s kW (compressor %s kW, cryocooler %s kW)\n",
		resp.Display.TotalPowerKW,
		models.FormatFixed(out.Breakdown.CompressorPowerKW, models.PowerDecimals),
		models.FormatFixed(out.Breakdown.CryoPowerKW, models.PowerDecimals))
	fmt.Fprintf(&sb, "Feed air flow:     %s LPM\n", resp.Display.FeedAirFlowLPM)
	fmt.Fprintf(&sb, "Membrane modules:  %s (%.0f%% utilized)\n", resp.Display.ModuleCount, out.Breakdown.ModuleUtilizationPct)
	fmt.Fprintf(&sb, "Cooling load:      %s W\n", resp.Display.CoolingLoadWatts)
	sb.WriteString("\n")
	sb.WriteString(resp.Summary)

	return sb.String()
}
