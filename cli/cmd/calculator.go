// ABOUTME: Calculator command for the ln2-sizer CLI
// ABOUTME: Launches the interactive sizing TUI on the in-process engine

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/debuglog"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/menu"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/recentfiles"
)

var (
	calculatorCalibration string
	calculatorRevision    string
	skipMenu              bool
)

var calculatorCmd = &cobra.Command{
	Use:     "calculator",
	Aliases: []string{"tui"},
	Short:   "Interactive sizing calculator",
	Long: `Open the interactive calculator. Adjust production with the arrow keys,
cycle purity and pressure tiers, switch formula revisions, and compare the
recuperator upgrade side by side. Press f to load another calibration table;
sample tables are read from ./calibration or LN2_SIZER_CALIBRATION_DIR.

Set LN2_SIZER_DEBUG_LOG to a file path to capture debug logs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalculator()
	},
}

func init() {
	rootCmd.AddCommand(calculatorCmd)
	calculatorCmd.Flags().StringVar(&calculatorCalibration, "calibration", "", "Calibration file (YAML or JSON)")
	calculatorCmd.Flags().StringVar(&calculatorRevision, "revision", "", "Starting formula revision")
	calculatorCmd.Flags().BoolVar(&skipMenu, "no-menu", false, "Skip the start menu and open the calculator")
}

func runCalculator() error {
	if err := debuglog.InitFromEnv(); err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	defer debuglog.Close()

	svc, err := loadService(calculatorCalibration, calculatorRevision)
	if err != nil {
		return err
	}
	if calculatorCalibration != "" {
		if err := recentfiles.New(recentfiles.DefaultConfigDir()).Add(calculatorCalibration); err != nil {
			debuglog.Error("remember calibration", err)
		}
	}

	sel := menu.Selection{View: menu.ViewCalculator, Revision: svc.DefaultRevision()}
	if !skipMenu {
		sel, err = menu.New(svc.DefaultRevision()).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	debuglog.Log("starting calculator view=%s revision=%s model=%s", sel.View, sel.Revision, svc.Table().Model)
	return tui.Run(svc, sel)
}
