// Package forestcarbon ties the carbon accounting engine together behind a
// single entry point: per-plot and batch stock calculation plus forward
// projection of sequestration under management scenarios.
//
// The heavy lifting lives in the subpackages: pkg/allometry (biomass
// equations), pkg/inventory (plot records and data quality), pkg/carbon
// (pool accounting and uncertainty) and pkg/projection (trajectories).
package forestcarbon

import (
	"go.uber.org/zap"

	"github.com/treemetrics/forestcarbon/pkg/allometry"
	"github.com/treemetrics/forestcarbon/pkg/carbon"
	"github.com/treemetrics/forestcarbon/pkg/inventory"
	"github.com/treemetrics/forestcarbon/pkg/projection"
)

// Engine is a ready-to-use accounting engine. It is stateless apart from
// the read-only equation tables and safe for concurrent use.
type Engine struct {
	calc *carbon.Calculator
}

// NewEngine builds an Engine over the built-in equation library. logger may
// be nil.
func NewEngine(logger *zap.SugaredLogger) *Engine {
	return &Engine{calc: carbon.NewCalculator(allometry.NewLibrary(), logger)}
}

// RegisterEquation adds a project-specific allometric equation; see
// allometry.Library.RegisterEquation.
func (e *Engine) RegisterEquation(speciesKey string, eq allometry.Equation) error {
	return e.calc.Library().RegisterEquation(speciesKey, eq)
}

// CalculatePlot computes the carbon stock result for one plot.
func (e *Engine) CalculatePlot(plot *inventory.ForestPlot, opts carbon.CalculationOptions) (*carbon.Result, error) {
	return e.calc.CalculatePlot(plot, opts)
}

// CalculateBatch computes results for a set of plots with the
// continue-on-error policy described on carbon.Calculator.CalculateBatch.
func (e *Engine) CalculateBatch(plots []*inventory.ForestPlot, opts carbon.CalculationOptions) *carbon.BatchResult {
	return e.calc.CalculateBatch(plots, opts)
}

// Project simulates the future carbon stock trajectory from a baseline
// under a management scenario.
func (e *Engine) Project(baselineTCO2e float64, scenario projection.Scenario, opts projection.Options) (*projection.Trajectory, error) {
	return projection.Project(baselineTCO2e, scenario, opts)
}
