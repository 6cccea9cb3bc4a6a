// Package carbon computes per-plot carbon stocks across the five
// accounting pools (aboveground biomass, belowground biomass, deadwood,
// litter, soil organic carbon) under a selectable methodology, and
// quantifies the uncertainty of each result by Monte Carlo simulation.
package carbon

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/treemetrics/forestcarbon/internal/log"
	"github.com/treemetrics/forestcarbon/pkg/allometry"
	"github.com/treemetrics/forestcarbon/pkg/inventory"
)

// Calculator computes carbon stocks for forest plots. It holds only
// read-only equation tables and a logger, so a single Calculator is safe
// for concurrent use.
type Calculator struct {
	lib    *allometry.Library
	logger *zap.SugaredLogger
}

// NewCalculator creates a Calculator over the given equation library. A nil
// logger falls back to the package logger.
func NewCalculator(lib *allometry.Library, logger *zap.SugaredLogger) *Calculator {
	if lib == nil {
		lib = allometry.NewLibrary()
	}
	if logger == nil {
		logger = log.GetSugaredLogger()
	}
	return &Calculator{lib: lib, logger: logger}
}

// Library exposes the calculator's equation library, e.g. to register
// project-specific species equations.
func (c *Calculator) Library() *allometry.Library { return c.lib }

// CalculatePlot computes the carbon stock result for a single plot.
// Methodology validation happens before any pool work; a plot with no
// resolvable AGB source returns an error wrapping ErrMissingData.
func (c *Calculator) CalculatePlot(plot *inventory.ForestPlot, opts CalculationOptions) (*Result, error) {
	methodology, err := ParseMethodology(string(opts.Methodology))
	if err != nil {
		return nil, err
	}

	quality := inventory.AssessQuality(plot)

	agb, bgb, bgbResolved, agbSource, details, warnings, err := c.resolveAGB(plot, opts)
	if err != nil {
		return nil, err
	}

	pools := map[PoolKind]float64{PoolAboveground: agb}
	sources := map[PoolKind]string{PoolAboveground: agbSource}

	pools[PoolBelowground], sources[PoolBelowground] = c.resolveBGB(plot, agb, bgb, bgbResolved, methodology)

	if methodology.includesDeadPools() {
		pools[PoolDeadwood], sources[PoolDeadwood] = resolveDeadwood(plot, agb)
		pools[PoolLitter], sources[PoolLitter] = resolveLitter(plot)
	}

	pools[PoolSoil], sources[PoolSoil] = resolveSoil(plot)

	// Summing in fixed pool order keeps the total bit-for-bit reproducible
	// across runs; float addition is not associative.
	var total float64
	for _, kind := range poolSampleOrder {
		total += pools[kind]
	}

	engine := NewUncertaintyEngine(opts.iterations(), opts.RNGSeed)
	low, high := engine.Interval(pools, quality.Measurement)

	c.logger.Debugw("plot calculated",
		"plot", plot.ID,
		"methodology", string(methodology),
		"agb_source", agbSource,
		"total_tco2e", total)

	return &Result{
		PlotID:            plot.ID,
		Methodology:       methodology,
		TotalTCO2e:        total,
		Pools:             pools,
		UncertaintyLow:    low,
		UncertaintyHigh:   high,
		ConfidenceLevel:   ConfidenceLevel,
		QualityIndicators: quality,
		DataSources:       sources,
		Warnings:          warnings,
		TreeDetails:       details,
		CalculationDate:   time.Now().UTC(),
	}, nil
}

// BatchResult is the outcome of a batch calculation. Results holds an entry
// per successful plot in input order; Skipped records every excluded plot
// with its reason. Err aggregates the skip errors for callers that prefer a
// single error value.
type BatchResult struct {
	RunID   uuid.UUID
	Results []*Result
	Skipped []SkipReason
	Err     error
}

// CalculateBatch computes results for every plot, continuing past plots
// that fail. Plots are processed in parallel, bounded by GOMAXPROCS; output
// order matches input order regardless of scheduling. A bad methodology is
// fatal for the whole batch and surfaces on Err with no results.
func (c *Calculator) CalculateBatch(plots []*inventory.ForestPlot, opts CalculationOptions) *BatchResult {
	batch := &BatchResult{RunID: uuid.New()}

	if _, err := ParseMethodology(string(opts.Methodology)); err != nil {
		batch.Err = err
		return batch
	}

	results := make([]*Result, len(plots))
	skips := make([]*SkipReason, len(plots))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, plot := range plots {
		g.Go(func() error {
			res, err := c.CalculatePlot(plot, opts)
			if err != nil {
				skips[i] = &SkipReason{PlotID: plot.ID, Err: err}
				c.logger.Warnw("plot skipped", "run", batch.RunID.String(), "plot", plot.ID, "reason", err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	// Compact in input order so scheduling never reorders the output.
	for i := range plots {
		if results[i] != nil {
			batch.Results = append(batch.Results, results[i])
		}
		if skips[i] != nil {
			batch.Skipped = append(batch.Skipped, *skips[i])
			batch.Err = multierr.Append(batch.Err, fmt.Errorf("plot %s: %w", skips[i].PlotID, skips[i].Err))
		}
	}

	c.logger.Infow("batch complete",
		"run", batch.RunID.String(),
		"plots", len(plots),
		"calculated", len(batch.Results),
		"skipped", len(batch.Skipped))
	return batch
}
