package carbon

import (
	"fmt"
	"strings"
)

// Methodology selects which carbon pools are computed and how aboveground
// and belowground biomass are resolved.
type Methodology string

const (
	// IPCC2006 computes the biomass and soil pools with 2006 Guidelines
	// defaults.
	IPCC2006 Methodology = "ipcc_2006"

	// IPCC2019 adds the deadwood and litter pools per the 2019 Refinement.
	IPCC2019 Methodology = "ipcc_2019"

	// MarketStandard follows voluntary-market rules: all five pools, with
	// directly measured root biomass substituting for the ratio estimate
	// when available.
	MarketStandard Methodology = "market_standard"

	// AllometricPlotLevel computes the biomass and soil pools purely from
	// plot-level allometrics.
	AllometricPlotLevel Methodology = "allometric_plot_level"
)

var validMethodologies = []Methodology{IPCC2006, IPCC2019, MarketStandard, AllometricPlotLevel}

// ParseMethodology validates a methodology tag. Unknown tags fail
// immediately; there is deliberately no silent default.
func ParseMethodology(tag string) (Methodology, error) {
	m := Methodology(strings.ToLower(strings.TrimSpace(tag)))
	for _, valid := range validMethodologies {
		if m == valid {
			return m, nil
		}
	}
	names := make([]string, len(validMethodologies))
	for i, v := range validMethodologies {
		names[i] = string(v)
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedMethodology, tag, strings.Join(names, ", "))
}

// includesDeadPools reports whether the methodology accounts the deadwood
// and litter pools.
func (m Methodology) includesDeadPools() bool {
	return m == IPCC2019 || m == MarketStandard
}
