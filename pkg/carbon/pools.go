package carbon

import (
	"fmt"
	"math"

	"github.com/treemetrics/forestcarbon/pkg/allometry"
	"github.com/treemetrics/forestcarbon/pkg/inventory"
)

// Stand-level biomass model (basal area * wood density * height), after
// the plantation AGB model of Torres & Lovett.
const (
	standModelCoefficient = 0.0673
	standModelExponent    = 0.976
)

// deadwoodAGBFraction is the IPCC Tier-1 deadwood default: 23% of
// aboveground biomass.
const deadwoodAGBFraction = 0.23

// defaultLitterTCO2ePerHa is the fixed litter pool default (tCO2e/ha).
const defaultLitterTCO2ePerHa = 2.1

// tier1AGBDefaults is the IPCC Tier-1 aboveground biomass stock table, in
// tonnes dry matter per hectare, keyed by forest type.
var tier1AGBDefaults = map[string]float64{
	"tropical_moist":       180,
	"tropical_dry":         90,
	"temperate_broadleaf":  130,
	"temperate_coniferous": 160,
	"temperate":            140,
	"boreal":               50,
	"mangrove":             190,
}

// soilCarbonDefaults is the default soil organic carbon stock table
// (tCO2e/ha) keyed by forest type. Any temperate subtype shares the
// temperate value.
var soilCarbonDefaults = map[string]float64{
	"tropical_moist":       35,
	"tropical_dry":         25,
	"temperate":            45,
	"temperate_broadleaf":  45,
	"temperate_coniferous": 45,
	"boreal":               85,
	"mangrove":             120,
}

// Soil texture families for the SOC adjustment. Classification is an exact
// match against these finite sets; unrecognized soil types get no
// adjustment.
var (
	claySoils = map[string]bool{
		"clay": true, "clay_loam": true, "silty_clay": true, "sandy_clay": true,
	}
	sandSoils = map[string]bool{
		"sand": true, "loamy_sand": true, "sandy_loam": true,
	}
)

const (
	claySoilFactor = 1.2
	sandSoilFactor = 0.8
)

// biomassTonnesToTCO2e converts tonnes of dry biomass per hectare to
// tCO2e per hectare.
func biomassTonnesToTCO2e(tonnes float64) float64 {
	return tonnes * allometry.CarbonFraction * allometry.CO2PerCarbon
}

// biomassKgToTCO2e converts kg of dry biomass per hectare to tCO2e per
// hectare.
func biomassKgToTCO2e(kg float64) float64 {
	return biomassTonnesToTCO2e(kg / allometry.KgPerTonne)
}

// treeBiomassPerHa aggregates the stem inventory into per-hectare AGB and
// BGB (kg/ha). Trees with non-positive DBH or wood density contribute
// nothing and are reported back as warnings.
func (c *Calculator) treeBiomassPerHa(plot *inventory.ForestPlot, opts CalculationOptions) (agbKgPerHa, bgbKgPerHa float64, details []TreeDetail, warnings []string) {
	for i, tree := range plot.Trees {
		if tree.DBHCm <= 0 {
			warnings = append(warnings, fmt.Errorf(
				"%w: tree %d (%s) has non-positive DBH %.2f cm, contributes zero biomass",
				ErrInvalidMeasurement, i, tree.Species, tree.DBHCm).Error())
			continue
		}
		if tree.WoodDensity != nil && *tree.WoodDensity <= 0 {
			warnings = append(warnings, fmt.Errorf(
				"%w: tree %d (%s) has non-positive wood density %.3f, contributes zero biomass",
				ErrInvalidMeasurement, i, tree.Species, *tree.WoodDensity).Error())
			continue
		}

		var height, density float64
		if tree.HeightM != nil {
			height = *tree.HeightM
		}
		if tree.WoodDensity != nil {
			density = *tree.WoodDensity
		}

		breakdown := c.lib.TreeBiomass(tree.Species, tree.DBHCm, height, density, plot.ForestType)

		area := tree.PlotAreaHa
		if area <= 0 && plot.PlotSizeHa != nil {
			area = *plot.PlotSizeHa
		}
		if area <= 0 {
			area = 1.0
		}

		agbKgPerHa += breakdown.AGBKg / area
		bgbKgPerHa += breakdown.BGBKg / area

		if opts.TreeDetails {
			details = append(details, TreeDetail{Species: tree.Species, DBHCm: tree.DBHCm, Biomass: breakdown})
		}
	}
	return agbKgPerHa, bgbKgPerHa, details, warnings
}

// resolveAGB walks the AGB source priority chain: stem inventory, then the
// stand-level basal-area model, then remote sensing, then the Tier-1
// forest-type default. It also returns the matching BGB value (tCO2e/ha)
// when the source determines one (stem inventory), with bgbResolved set.
func (c *Calculator) resolveAGB(plot *inventory.ForestPlot, opts CalculationOptions) (agb float64, bgb float64, bgbResolved bool, source string, details []TreeDetail, warnings []string, err error) {
	if plot.HasTrees() {
		agbKg, bgbKg, details, warnings := c.treeBiomassPerHa(plot, opts)
		return biomassKgToTCO2e(agbKg), biomassKgToTCO2e(bgbKg), true, SourceTreeInventory, details, warnings, nil
	}

	if plot.HasPlotAggregates() {
		rhoBAH := *plot.WoodDensity * *plot.BasalAreaPerHa * *plot.StandHeight
		agbKg := standModelCoefficient * math.Pow(rhoBAH, standModelExponent)
		if plot.EnvironmentalStressFactor != nil {
			agbKg *= 1.0 + *plot.EnvironmentalStressFactor
		}
		return biomassKgToTCO2e(agbKg), 0, false, SourcePlotAggregate, nil, nil, nil
	}

	if plot.RemoteSensingAGBPerHa != nil && *plot.RemoteSensingAGBPerHa > 0 {
		return biomassTonnesToTCO2e(*plot.RemoteSensingAGBPerHa), 0, false, SourceRemoteSensing, nil, nil, nil
	}

	if tonnes, ok := tier1AGBDefaults[plot.ForestType]; ok {
		return biomassTonnesToTCO2e(tonnes), 0, false, SourceTier1Default, nil, nil, nil
	}

	return 0, 0, false, "", nil, nil,
		fmt.Errorf("%w %q: no trees, plot aggregates, remote sensing estimate, or recognized forest type %q", ErrMissingData, plot.ID, plot.ForestType)
}

// resolveBGB computes the belowground pool (tCO2e/ha). MarketStandard
// substitutes a directly measured root biomass when one exists, even when
// the stem inventory already produced a per-tree estimate; otherwise the
// stem-level value wins, then the forest-type root-to-shoot ratio.
func (c *Calculator) resolveBGB(plot *inventory.ForestPlot, agbTCO2e, treeBGB float64, treeResolved bool, m Methodology) (float64, string) {
	if m == MarketStandard && plot.RootBiomassPerHa != nil && *plot.RootBiomassPerHa > 0 {
		return biomassTonnesToTCO2e(*plot.RootBiomassPerHa), SourceDirect
	}
	if treeResolved {
		return treeBGB, SourceTreeInventory
	}
	// Ratio applies identically in biomass and CO2e terms. No species or
	// stem size at plot level, so the forest-type ratio governs.
	return c.lib.EstimateBGB(agbTCO2e, "", 0, plot.ForestType), "root_shoot_ratio"
}

// resolveDeadwood computes the deadwood pool (tCO2e/ha): direct volume and
// density when measured, else the Tier-1 fraction of AGB.
func resolveDeadwood(plot *inventory.ForestPlot, agbTCO2e float64) (float64, string) {
	if plot.DeadwoodVolumeM3PerHa != nil && plot.DeadwoodDensity != nil &&
		*plot.DeadwoodVolumeM3PerHa > 0 && *plot.DeadwoodDensity > 0 {
		tonnes := *plot.DeadwoodVolumeM3PerHa * *plot.DeadwoodDensity
		return biomassTonnesToTCO2e(tonnes), SourceDirect
	}
	return agbTCO2e * deadwoodAGBFraction, SourceTier1Default
}

// resolveLitter computes the litter pool (tCO2e/ha).
func resolveLitter(plot *inventory.ForestPlot) (float64, string) {
	if plot.LitterMassPerHa != nil && *plot.LitterMassPerHa > 0 {
		return biomassTonnesToTCO2e(*plot.LitterMassPerHa), SourceDirect
	}
	return defaultLitterTCO2ePerHa, SourceTier1Default
}

// resolveSoil computes the soil organic carbon pool (tCO2e/ha): direct
// measurement, else the forest-type default adjusted for soil texture.
func resolveSoil(plot *inventory.ForestPlot) (float64, string) {
	if plot.SoilCarbonPerHa != nil && *plot.SoilCarbonPerHa > 0 {
		return *plot.SoilCarbonPerHa, SourceDirect
	}

	soc, ok := soilCarbonDefaults[plot.ForestType]
	if !ok {
		soc = soilCarbonDefaults["temperate"]
	}
	switch {
	case claySoils[plot.SoilType]:
		soc *= claySoilFactor
	case sandSoils[plot.SoilType]:
		soc *= sandSoilFactor
	}
	return soc, SourceTier1Default
}
