package inventory

import (
	"math"
	"time"
)

// referencePlotSizeHa is the plot size at or above which spatial
// representativeness scores 1.0.
const referencePlotSizeHa = 0.1

// unknownScore applies when a quality dimension cannot be assessed at all.
const unknownScore = 0.5

// QualityScores grades a plot's inputs on three dimensions, each in [0, 1].
type QualityScores struct {
	// Measurement is the fraction of the core field measurements
	// (DBH, height, wood density, basal area) that are present.
	Measurement float64

	// Temporal decays linearly with measurement age, reaching zero at one
	// year old.
	Temporal float64

	// Spatial scales with plot size up to the 0.1 ha reference size.
	Spatial float64
}

// Overall is the mean of the three dimension scores.
func (q QualityScores) Overall() float64 {
	return (q.Measurement + q.Temporal + q.Spatial) / 3.0
}

// AssessQuality scores the completeness, timeliness and representativeness
// of a plot's measurements. Scoring is relative to time.Now().
func AssessQuality(plot *ForestPlot) QualityScores {
	return assessQualityAt(plot, time.Now())
}

func assessQualityAt(plot *ForestPlot, now time.Time) QualityScores {
	var q QualityScores

	present := 0
	if hasDBH(plot) {
		present++
	}
	if hasHeight(plot) {
		present++
	}
	if hasWoodDensity(plot) {
		present++
	}
	if plot.BasalAreaPerHa != nil {
		present++
	}
	q.Measurement = float64(present) / 4.0

	if plot.MeasurementDate != nil {
		days := now.Sub(*plot.MeasurementDate).Hours() / 24.0
		q.Temporal = math.Max(0, 1.0-days/365.0)
	} else {
		q.Temporal = unknownScore
	}

	if plot.PlotSizeHa != nil && *plot.PlotSizeHa > 0 {
		q.Spatial = math.Min(1.0, *plot.PlotSizeHa/referencePlotSizeHa)
	} else {
		q.Spatial = unknownScore
	}

	return q
}

func hasDBH(plot *ForestPlot) bool {
	return plot.HasTrees()
}

func hasHeight(plot *ForestPlot) bool {
	if plot.StandHeight != nil {
		return true
	}
	for _, t := range plot.Trees {
		if t.HeightM != nil && *t.HeightM > 0 {
			return true
		}
	}
	return false
}

func hasWoodDensity(plot *ForestPlot) bool {
	if plot.WoodDensity != nil {
		return true
	}
	for _, t := range plot.Trees {
		if t.WoodDensity != nil && *t.WoodDensity > 0 {
			return true
		}
	}
	return false
}
