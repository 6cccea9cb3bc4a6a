// Package allometry provides published allometric equations for estimating
// tree biomass and carbon from standard forest inventory measurements.
// Species without a specific published model resolve through a regional
// default and finally the Chave pantropical equation.
package allometry

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/treemetrics/forestcarbon/internal/log"
)

// Conversion constants used throughout carbon accounting.
const (
	// CarbonFraction is the IPCC default carbon fraction of dry biomass.
	CarbonFraction = 0.47
	// CO2PerCarbon converts carbon mass to CO2-equivalent mass (44/12 molar ratio).
	CO2PerCarbon = 44.0 / 12.0
	// KgPerTonne converts kg to metric tonnes.
	KgPerTonne = 1000.0

	// defaultWoodDensity is used when neither the caller nor the resolved
	// equation supplies a density (g/cm^3).
	defaultWoodDensity = 0.60

	// largeTreeDBHCm is the threshold above which the root-to-shoot ratio
	// is reduced, since large stems allocate proportionally less to roots.
	largeTreeDBHCm      = 50.0
	largeTreeRootFactor = 0.9
	minEstimatedHeightM = 0.5
)

// rootShootRatios maps forest type to the IPCC default root-to-shoot ratio.
var rootShootRatios = map[string]float64{
	"tropical_moist":       0.24,
	"tropical_dry":         0.28,
	"temperate_broadleaf":  0.26,
	"temperate_coniferous": 0.29,
	"boreal":               0.30,
	"mangrove":             0.39,
}

// defaultRootShootRatio applies when the forest type is unknown.
const defaultRootShootRatio = 0.26

// BiomassBreakdown is the per-tree biomass and carbon summary returned by
// TreeBiomass. All masses are kg per stem.
type BiomassBreakdown struct {
	AGBKg    float64
	BGBKg    float64
	TotalKg  float64
	CarbonKg float64
	CO2eKg   float64
}

// Confidence grades how well an equation fits the measurement it was asked
// to evaluate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ApplicabilityReport is the result of ValidateApplicability. It is always
// returned; applicability checking never fails.
type ApplicabilityReport struct {
	Valid      bool
	Warnings   []string
	Confidence Confidence
}

// Library holds the compiled equation tables. The built-in tables are
// immutable; RegisterEquation adds caller-supplied species under a lock, so
// a Library is safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	species map[string]Equation
}

// NewLibrary builds a Library from the compiled species, genus and regional
// tables.
func NewLibrary() *Library {
	species := make(map[string]Equation, len(builtinEquations))
	for k, eq := range builtinEquations {
		species[k] = eq
	}
	return &Library{species: species}
}

// RegisterEquation adds or replaces a species-specific equation. The key is
// normalized the same way lookups are, so "Tectona Grandis" and
// "tectona grandis" address the same entry.
func (l *Library) RegisterEquation(speciesKey string, eq Equation) error {
	key := normalizeSpecies(speciesKey)
	if key == "" {
		return fmt.Errorf("empty species key")
	}
	if err := eq.Validate(); err != nil {
		return fmt.Errorf("equation for %q: %w", speciesKey, err)
	}
	l.mu.Lock()
	l.species[key] = eq
	l.mu.Unlock()
	log.Debugw("registered allometric equation", "species", key, "form", eq.Form.String())
	return nil
}

// lookup resolves an equation for a species name. The second return reports
// whether the match was species/genus specific (true) or a regional or
// pantropical fallback (false).
func (l *Library) lookup(species string) (Equation, bool) {
	key := normalizeSpecies(species)

	l.mu.RLock()
	eq, ok := l.species[key]
	if !ok {
		// Genus-level entries cover e.g. "eucalyptus grandis" via "eucalyptus".
		if genus := genusOf(key); genus != key {
			eq, ok = l.species[genus]
		}
	}
	l.mu.RUnlock()
	if ok {
		return eq, true
	}

	if region, classified := genusRegions[genusOf(key)]; classified {
		return regionalEquations[region], false
	}

	// Pantropical fallback: AGB = exp(-2.977 + ln(rho*D^2*H)).
	return Equation{
		Form: FormPowerLawRhoD2H, A: math.Exp(-2.977), B: 1.0,
		WoodDensityDefault: defaultWoodDensity,
		HeightModel:        HeightChaveLogLog,
	}, false
}

// EstimateAGB estimates aboveground biomass (kg) for a single stem.
// heightM and woodDensity may be zero, in which case they are estimated
// from the resolved equation's height model and default density.
func (l *Library) EstimateAGB(species string, dbhCM, heightM, woodDensity float64) float64 {
	if dbhCM <= 0 {
		return 0
	}

	eq, _ := l.lookup(species)

	if woodDensity <= 0 {
		woodDensity = eq.WoodDensityDefault
	}
	if woodDensity <= 0 {
		woodDensity = defaultWoodDensity
	}
	if heightM <= 0 {
		heightM = estimateHeight(eq.HeightModel, dbhCM)
	}

	return eq.Evaluate(dbhCM, heightM, woodDensity)
}

// EstimateHeight estimates tree height (m) from DBH using the height model
// referenced by the species' equation.
func (l *Library) EstimateHeight(species string, dbhCM float64) float64 {
	if dbhCM <= 0 {
		return 0
	}
	eq, _ := l.lookup(species)
	return estimateHeight(eq.HeightModel, dbhCM)
}

func estimateHeight(model HeightModel, dbhCM float64) float64 {
	switch model {
	case HeightDiameterRatio:
		return 20.0 * dbhCM / 100.0
	default:
		// Chave et al. height-diameter model.
		lnD := math.Log(dbhCM)
		h := math.Exp(0.893 + 0.760*lnD - 0.0340*lnD*lnD)
		return math.Max(h, minEstimatedHeightM)
	}
}

// EstimateBGB estimates belowground biomass (kg) from aboveground biomass
// using root-to-shoot ratios. A species-specific ratio takes precedence
// over the forest-type default, and trees above 50 cm DBH get a 0.9
// large-tree correction.
func (l *Library) EstimateBGB(agbKG float64, species string, dbhCM float64, forestType string) float64 {
	if agbKG <= 0 {
		return 0
	}

	ratio := defaultRootShootRatio
	if r, ok := rootShootRatios[forestType]; ok {
		ratio = r
	}
	if eq, specific := l.lookup(species); specific && eq.RootShootRatio > 0 {
		ratio = eq.RootShootRatio
	}

	if dbhCM > largeTreeDBHCm {
		ratio *= largeTreeRootFactor
	}
	return agbKG * ratio
}

// TreeBiomass computes the full biomass and carbon breakdown for one stem.
func (l *Library) TreeBiomass(species string, dbhCM, heightM, woodDensity float64, forestType string) BiomassBreakdown {
	agb := l.EstimateAGB(species, dbhCM, heightM, woodDensity)
	bgb := l.EstimateBGB(agb, species, dbhCM, forestType)
	total := agb + bgb
	carbon := total * CarbonFraction
	return BiomassBreakdown{
		AGBKg:    agb,
		BGBKg:    bgb,
		TotalKg:  total,
		CarbonKg: carbon,
		CO2eKg:   carbon * CO2PerCarbon,
	}
}

// ValidateApplicability reports whether a measurement sits inside the
// calibration envelope of the equation that would be used for it. It never
// fails; out-of-range measurements are flagged, not rejected.
func (l *Library) ValidateApplicability(species string, dbhCM, heightM float64) ApplicabilityReport {
	report := ApplicabilityReport{Valid: true, Confidence: ConfidenceHigh}

	eq, specific := l.lookup(species)
	if !specific {
		report.Confidence = ConfidenceMedium
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("no species-specific equation for %q; using fallback model", species))
	}

	if dbhCM < 5 {
		report.Valid = false
		report.Confidence = ConfidenceLow
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("DBH %.1f cm is below the 5 cm calibration floor", dbhCM))
	} else if dbhCM > 200 {
		report.Valid = false
		report.Confidence = ConfidenceLow
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("DBH %.1f cm is above the 200 cm calibration ceiling", dbhCM))
	}

	if heightM > 0 && dbhCM > 0 {
		expected := estimateHeight(eq.HeightModel, dbhCM)
		if heightM < 0.5*expected || heightM > 2.0*expected {
			if report.Confidence == ConfidenceHigh {
				report.Confidence = ConfidenceMedium
			}
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("measured height %.1f m is far from the %.1f m expected for DBH %.1f cm", heightM, expected, dbhCM))
		}
	}

	return report
}

// StockCategory classifies a per-hectare carbon stock (tCO2e/ha) into a
// coarse density band for reporting.
func StockCategory(tCO2ePerHa float64) string {
	switch {
	case tCO2ePerHa < 100:
		return "Low carbon density"
	case tCO2ePerHa < 300:
		return "Moderate carbon density"
	case tCO2ePerHa < 600:
		return "High carbon density"
	default:
		return "Very high carbon density"
	}
}

func normalizeSpecies(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func genusOf(normalized string) string {
	if i := strings.IndexByte(normalized, ' '); i > 0 {
		return normalized[:i]
	}
	return normalized
}
