package carbon

import "errors"

// Sentinel errors for the failure classes callers are expected to
// distinguish. Wrap with fmt.Errorf("...: %w", ...) for context and test
// with errors.Is.
var (
	// ErrMissingData marks a plot with no resolvable aboveground biomass
	// source. Recoverable: batch calculation skips the plot and continues.
	ErrMissingData = errors.New("no aboveground biomass data source resolves for plot")

	// ErrInvalidMeasurement marks a physically impossible field value,
	// such as a non-positive DBH or wood density. Recoverable: the
	// offending tree contributes zero biomass.
	ErrInvalidMeasurement = errors.New("invalid measurement")

	// ErrUnsupportedMethodology is fatal and raised before any pool
	// computation begins.
	ErrUnsupportedMethodology = errors.New("unsupported accounting methodology")
)
