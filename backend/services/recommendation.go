// ABOUTME: Operating point recommender for a production target
// ABOUTME: Evaluates every calibrated pressure/purity tier that meets the purity requirement

package services

import (
	"fmt"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// Recommender ranks calibrated operating points by total power
type Recommender struct {
	service *SizingService
}

// NewRecommender creates a recommender backed by the sizing service
func NewRecommender(service *SizingService) *Recommender {
	return &Recommender{service: service}
}

// Recommend evaluates every (pressure, purity) entry whose O2 content does not exceed
// the requested maximum, so each option delivers nitrogen at least as pure as asked.
// Options are ranked by total power; the entry the engine would pick for the raw
// inputs is flagged as selected.
func (r *Recommender) Recommend(req models.SizingRequest) (models.RecommendationsResponse, error) {
	calc, revision, err := r.service.Calculator(req.Revision)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}

	// Validates the production target and tells us which entry is current
	current, err := calc.Compute(req.SizingInputs)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}

	var options []models.OperatingPointOption
	for _, row := range calc.Table().Rows {
		for _, point := range row.Points {
			if float64(point.PurityPercent) > req.OxygenPurityPercent {
				continue
			}
			in := models.SizingInputs{
				TargetProductionLitersPerDay: req.TargetProductionLitersPerDay,
				OxygenPurityPercent:          float64(point.PurityPercent),
				FeedPressureBar:              float64(row.PressureBar),
			}
			out, err := calc.Compute(in)
			if err != nil {
				return models.RecommendationsResponse{}, err
			}
			options = append(options, models.OperatingPointOption{
				PressureBar:      float64(row.PressureBar),
				PurityPercent:    float64(point.PurityPercent),
				NitrogenPurity:   point.PurityPercent.NitrogenPurity(),
				ModuleCount:      out.ModuleCount,
				FeedAirFlowLPM:   out.FeedAirFlowLPM,
				TotalPowerKW:     out.TotalPowerKW,
				CoolingLoadWatts: out.CoolingLoadWatts,
				Recovery:         point.Recovery(),
				Label:            fmt.Sprintf("%g bar · %g%% N2", float64(row.PressureBar), point.PurityPercent.NitrogenPurity()),
				Selected: float64(row.PressureBar) == current.OperatingPoint.PressureBar &&
					float64(point.PurityPercent) == current.OperatingPoint.PurityPercent,
			})
		}
	}

	models.RankOptions(options)

	return models.RecommendationsResponse{
		TargetProductionLitersPerDay: req.TargetProductionLitersPerDay,
		MaxOxygenPurityPercent:       req.OxygenPurityPercent,
		Revision:                     revision,
		Options:                      options,
	}, nil
}
