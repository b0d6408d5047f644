package substitution

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/inbound"
)

// AnalyzeImpact renders an edge's impact description as human-readable lines
// plus the adjustment suggestions that come with it
func AnalyzeImpact(edge catalog.SubstitutionEdge) inbound.ImpactAnalysis {
	var out inbound.ImpactAnalysis

	appendNote(&out.Notes, "Taste", edge.Impact.Taste)
	appendNote(&out.Notes, "Texture", edge.Impact.Texture)
	appendNote(&out.Notes, "Color", edge.Impact.Color)
	appendNote(&out.Notes, "Nutrition", edge.Impact.Nutrition)

	collectAdjustments(edge.Adjustments, &out)
	return out
}

// AnalyzeAdaptationImpact is the appliance counterpart of AnalyzeImpact
func AnalyzeAdaptationImpact(edge catalog.AdaptationEdge) inbound.ImpactAnalysis {
	var out inbound.ImpactAnalysis

	appendNote(&out.Notes, "Technique", edge.Impact.Technique)
	appendNote(&out.Notes, "Timing", edge.Impact.Timing)
	appendNote(&out.Notes, "Quality", edge.Impact.Quality)
	appendNote(&out.Notes, "Difficulty", edge.Impact.Difficulty)

	collectAdjustments(edge.Adjustments, &out)
	return out
}

func collectAdjustments(adjustments []catalog.Adjustment, out *inbound.ImpactAnalysis) {
	for _, adj := range adjustments {
		if adj.Compensation != "" {
			out.Compensations = append(out.Compensations, adj.Compensation)
		}
		if adj.Description != "" {
			if adj.StepNumber > 0 {
				out.StepSuggestions = append(out.StepSuggestions,
					fmt.Sprintf("Step %d: %s", adj.StepNumber, adj.Description))
			} else {
				out.StepSuggestions = append(out.StepSuggestions, adj.Description)
			}
		}
		if adj.TimingDeltaMinutes != 0 {
			out.TimingDeltaMinutes += adj.TimingDeltaMinutes
			if adj.TimingReason != "" {
				if out.TimingReason != "" {
					out.TimingReason += "; "
				}
				out.TimingReason += adj.TimingReason
			}
		}
	}
}

func appendNote(notes *[]string, dimension, delta string) {
	if delta != "" {
		*notes = append(*notes, dimension+": "+delta)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPercent(ratio float64) string {
	return strconv.FormatFloat(round2(ratio*100), 'f', -1, 64)
}
