package carbon

import (
	"time"

	"github.com/treemetrics/forestcarbon/pkg/allometry"
	"github.com/treemetrics/forestcarbon/pkg/inventory"
)

// PoolKind identifies one of the five carbon accounting pools.
type PoolKind string

const (
	PoolAboveground PoolKind = "aboveground_biomass"
	PoolBelowground PoolKind = "belowground_biomass"
	PoolDeadwood    PoolKind = "deadwood"
	PoolLitter      PoolKind = "litter"
	PoolSoil        PoolKind = "soil_organic_carbon"
)

// Data source tags recorded in Result.DataSources.
const (
	SourceTreeInventory = "tree_inventory"
	SourcePlotAggregate = "plot_aggregate"
	SourceRemoteSensing = "remote_sensing"
	SourceTier1Default  = "ipcc_tier1_default"
	SourceDirect        = "direct_measurement"
)

// Result is the carbon stock accounting for a single plot, in tCO2e per
// hectare. TotalTCO2e is always the exact sum of the Pools map.
type Result struct {
	PlotID      string
	Methodology Methodology

	TotalTCO2e float64
	Pools      map[PoolKind]float64

	// UncertaintyLow/High bound the total at the stated confidence level.
	UncertaintyLow  float64
	UncertaintyHigh float64
	ConfidenceLevel float64

	QualityIndicators inventory.QualityScores

	// DataSources records which input resolved each pool group, keyed by
	// pool kind.
	DataSources map[PoolKind]string

	// Warnings lists non-fatal measurement problems, such as trees dropped
	// for invalid DBH.
	Warnings []string

	// TreeDetails holds per-stem breakdowns when
	// CalculationOptions.TreeDetails is set.
	TreeDetails []TreeDetail

	CalculationDate time.Time
}

// TreeDetail is the audit record for one stem's contribution.
type TreeDetail struct {
	Species string
	DBHCm   float64
	Biomass allometry.BiomassBreakdown
}

// SkipReason records why a plot was excluded from a batch result.
type SkipReason struct {
	PlotID string
	Err    error
}

func (s SkipReason) String() string {
	return s.PlotID + ": " + s.Err.Error()
}
