// ABOUTME: Recommend command for the ln2-sizer CLI
// ABOUTME: Ranks calibrated operating points that meet a purity target by total power

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/client"
)

var (
	recommendInputs sizingFlags
	recommendTop    int
	recommendLocal  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank operating points for a production target",
	Long: `List every calibrated pressure and purity combination that delivers nitrogen at
least as pure as --purity, ranked by total electrical power. The entry the
calculator would pick for the given --pressure is marked with *.

Example:
  ln2-sizer recommend --production 25 --purity 1 --top 3`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRecommend(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendInputs.register(recommendCmd)
	recommendCmd.Flags().IntVar(&recommendTop, "top", 0, "Show only the best N options (0 shows all)")
	recommendCmd.Flags().BoolVar(&recommendLocal, "local", false, "Compute in-process instead of calling the API")
}

// runRecommend fetches ranked options and returns exit code
func runRecommend(ctx context.Context, w io.Writer) int {
	req := recommendInputs.request()
	if err := validateRequest(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if recommendTop < 0 {
		fmt.Fprintln(w, "Error: --top must be non-negative")
		return 2
	}

	resp, err := recommend(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if recommendTop > 0 && len(resp.Options) > recommendTop {
		resp.Options = resp.Options[:recommendTop]
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(resp.Options) == 0 {
		fmt.Fprintf(w, "No calibrated operating point reaches %g%% O2 or better.\n", resp.MaxOxygenPurityPercent)
		return 0
	}
	fmt.Fprintln(w, formatRecommendHuman(resp))
	return 0
}

func recommend(ctx context.Context, req models.SizingRequest) (*models.RecommendationsResponse, error) {
	if !recommendLocal {
		return client.New(GetAPIURL()).Recommendations(ctx, req)
	}
	svc, err := loadService("", "")
	if err != nil {
		return nil, err
	}
	resp, err := services.NewRecommender(svc).Recommend(req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// formatRecommendHuman renders the ranked options as a table
func formatRecommendHuman(resp *models.RecommendationsResponse) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Operating point", "Modules", "Air (LPM)", "Power (kW)", "Cooling (W)", "Recovery")

	for _, o := range resp.Options {
		rank := strconv.Itoa(o.Rank)
		if o.Selected {
			rank += "*"
		}
		t.Row(
			rank,
			o.Label,
			strconv.Itoa(o.ModuleCount),
			models.FormatFixed(o.FeedAirFlowLPM, models.AirFlowDecimals),
			models.FormatFixed(o.TotalPowerKW, models.PowerDecimals),
			models.FormatFixed(o.CoolingLoadWatts, models.CoolingDecimals),
			fmt.Sprintf("%.0f%%", o.Recovery*100),
		)
	}

	header := fmt.Sprintf("%g L/day at %g%% O2 or better (%s)\n",
		resp.TargetProductionLitersPerDay, resp.MaxOxygenPurityPercent, resp.Revision)
	return header + t.String()
}
