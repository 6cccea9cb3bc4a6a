// Package inventory defines the forest plot measurement records consumed by
// the carbon accounting engine, and scores how complete, current and
// representative a plot's measurements are.
package inventory

import "time"

// TreeRecord is a single measured stem within a plot.
type TreeRecord struct {
	// Species is the binomial or genus name used for equation lookup.
	Species string

	// DBHCm is the diameter at breast height in cm. Must be positive for
	// the tree to contribute biomass.
	DBHCm float64

	// HeightM is the measured height in m, if taken.
	HeightM *float64

	// WoodDensity is a measured wood density in g/cm^3, if available.
	WoodDensity *float64

	// PlotAreaHa is the sampled area this stem represents. When zero, the
	// plot's PlotSizeHa applies.
	PlotAreaHa float64
}

// ForestPlot is one inventoried plot. Pointer fields are optional
// measurements; at least one aboveground biomass source (trees,
// plot aggregates, remote sensing, or a recognized forest type) must be
// present for the plot to be calculable.
type ForestPlot struct {
	ID string

	// Trees is the stem-level inventory, when a full tally was taken.
	Trees []TreeRecord

	// Plot-aggregate stand measurements.
	BasalAreaPerHa            *float64 // m^2/ha
	WoodDensity               *float64 // g/cm^3, stand mean
	StandHeight               *float64 // m, dominant height
	EnvironmentalStressFactor *float64 // unitless adjustment, e.g. 0.1 for +10%

	// RemoteSensingAGBPerHa is an externally estimated aboveground biomass
	// density in tonnes dry matter per ha.
	RemoteSensingAGBPerHa *float64

	// Classification tags.
	ForestType  string
	SoilType    string
	ClimateZone string

	// Direct pool measurements, all optional.
	SoilCarbonPerHa       *float64 // tCO2e/ha, overrides the default table
	DeadwoodVolumeM3PerHa *float64 // m^3/ha
	DeadwoodDensity       *float64 // t/m^3
	LitterMassPerHa       *float64 // tonnes dry matter/ha
	RootBiomassPerHa      *float64 // tonnes dry matter/ha, market-standard methodologies

	MeasurementDate *time.Time
	PlotSizeHa      *float64
}

// HasTrees reports whether the plot carries at least one stem with a
// positive DBH.
func (p *ForestPlot) HasTrees() bool {
	for _, t := range p.Trees {
		if t.DBHCm > 0 {
			return true
		}
	}
	return false
}

// HasPlotAggregates reports whether the basal-area stand model inputs are
// all present.
func (p *ForestPlot) HasPlotAggregates() bool {
	return p.BasalAreaPerHa != nil && p.WoodDensity != nil && p.StandHeight != nil
}
