// ABOUTME: Shared sizing flags and engine access for sizing commands
// ABOUTME: Routes requests to the API or to the in-process calculator

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/client"
)

// sizingFlags binds the four sizing inputs to a command
type sizingFlags struct {
	production float64
	purity     float64
	pressure   float64
	revision   string
}

func (f *sizingFlags) register(cmd *cobra.Command) {
	def := models.DefaultSizingInputs()
	cmd.Flags().Float64Var(&f.production, "production", def.TargetProductionLitersPerDay, "Target LN2 production in L/day")
	cmd.Flags().Float64Var(&f.purity, "purity", def.OxygenPurityPercent, "Residual oxygen in the nitrogen stream (%)")
	cmd.Flags().Float64Var(&f.pressure, "pressure", def.FeedPressureBar, "Membrane feed pressure in bar(g)")
	cmd.Flags().StringVar(&f.revision, "revision", "", "Formula revision (baseline, recuperated)")
}

func (f *sizingFlags) request() models.SizingRequest {
	return models.SizingRequest{
		SizingInputs: models.SizingInputs{
			TargetProductionLitersPerDay: f.production,
			OxygenPurityPercent:          f.purity,
			FeedPressureBar:              f.pressure,
		},
		Revision: f.revision,
	}
}

// validateRequest catches bad input before any network call
func validateRequest(req models.SizingRequest) error {
	if !(req.TargetProductionLitersPerDay > 0) {
		return fmt.Errorf("--production must be a positive number of L/day, got %g", req.TargetProductionLitersPerDay)
	}
	return services.ValidateSizingRequest(req)
}

// loadService builds the in-process engine from an optional calibration file
func loadService(calibrationPath, revision string) (*services.SizingService, error) {
	table, _, err := services.LoadCalibration(calibrationPath)
	if err != nil {
		return nil, err
	}
	return services.NewSizingService(table, revision)
}

// sizeRequest sizes one request locally or through the API
func sizeRequest(ctx context.Context, req models.SizingRequest, local bool, calibrationPath string) (*models.SizingResponse, error) {
	if !local {
		return client.New(GetAPIURL()).Size(ctx, req)
	}

	svc, err := loadService(calibrationPath, "")
	if err != nil {
		return nil, err
	}
	resp, err := svc.Size(req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
