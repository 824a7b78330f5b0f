// ABOUTME: Stages command for the ln2-sizer CLI
// ABOUTME: Renders the process-stage cards with live values as terminal Markdown

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/stages"
)

var (
	stagesInputs      sizingFlags
	stagesCalibration string
	stagesWidth       int
	stagesPlain       bool
	stagesRaw         bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show the process stages for a sizing",
	Long: `Describe each stage of the generator, from air handling and membrane
separation through the cryocooler stages to the storage dewar, with live values
for the given inputs. Computed in-process; no backend is needed.

Example:
  ln2-sizer stages --production 25 --revision recuperated`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runStages(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	stagesInputs.register(stagesCmd)
	stagesCmd.Flags().StringVar(&stagesCalibration, "calibration", "", "Calibration file (YAML or JSON)")
	stagesCmd.Flags().IntVar(&stagesWidth, "width", 100, "Word wrap width")
	stagesCmd.Flags().BoolVar(&stagesPlain, "plain", false, "Disable colors and styling")
	stagesCmd.Flags().BoolVar(&stagesRaw, "markdown", false, "Print raw Markdown instead of rendering it")
}

// runStages builds and renders the stage catalog, returning exit code
func runStages(w io.Writer) int {
	req := stagesInputs.request()
	if err := validateRequest(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	svc, err := loadService(stagesCalibration, "")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := svc.Stages(req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	md := stages.Markdown(resp)
	if stagesRaw {
		fmt.Fprint(w, md)
		return 0
	}

	out, err := stages.Render(md, stagesWidth, stagesPlain)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprint(w, out)
	return 0
}
