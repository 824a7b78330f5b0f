// ABOUTME: Calibration command for the ln2-sizer CLI
// ABOUTME: Prints the active membrane table in the calibration file format

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

var calibrationFile string

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Print the membrane calibration table",
	Long: `Print the membrane performance table the calculator uses, in the YAML
format accepted by --calibration and CALIBRATION_FILE. Without a file the
built-in MNH-1522A table is printed, which makes a starting point for a new
calibration.

Example:
  ln2-sizer calibration > calibration/site-a.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runCalibration(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(calibrationCmd)
	calibrationCmd.Flags().StringVar(&calibrationFile, "calibration", "", "Calibration file to validate and print (YAML or JSON)")
}

// runCalibration loads, validates, and prints the table, returning exit code
func runCalibration(w io.Writer) int {
	table, _, err := services.LoadCalibration(calibrationFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(table, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	data, err := services.MarshalCalibration(table)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	w.Write(data)
	return 0
}
