package carbon

// Default simulation parameters.
const (
	// DefaultMonteCarloIterations is the sample count for uncertainty
	// estimation when the caller does not override it.
	DefaultMonteCarloIterations = 1000

	// ConfidenceLevel of the reported uncertainty interval. Fixed: the
	// interval is always the 2.5th-97.5th percentile span.
	ConfidenceLevel = 0.95
)

// CalculationOptions configures a calculation run. The zero value selects
// the defaults stated on each field; Methodology has no default and must be
// set.
type CalculationOptions struct {
	// Methodology selects the pool set and resolution rules. Required.
	Methodology Methodology

	// MonteCarloIterations is the uncertainty sample count. Zero means
	// DefaultMonteCarloIterations.
	MonteCarloIterations int

	// RNGSeed seeds the uncertainty simulation for reproducible runs.
	// Zero means a time-derived seed.
	RNGSeed uint64

	// TreeDetails retains per-tree biomass breakdowns on the result for
	// audit; off by default to keep batch memory flat.
	TreeDetails bool
}

func (o CalculationOptions) iterations() int {
	if o.MonteCarloIterations > 0 {
		return o.MonteCarloIterations
	}
	return DefaultMonteCarloIterations
}
