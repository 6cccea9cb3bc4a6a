// Package projection simulates future carbon stock trajectories under
// management scenarios, combining a deterministic compound growth path with
// a stochastic ensemble for confidence bounds.
package projection

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/treemetrics/forestcarbon/internal/log"
)

// Scenario is a management scenario tag with an associated annual carbon
// stock growth rate.
type Scenario string

const (
	Conservation       Scenario = "conservation"
	Restoration        Scenario = "restoration"
	EnhancedManagement Scenario = "enhanced_management"
	Degradation        Scenario = "degradation"
)

// scenarioRates maps each scenario to its annual growth rate.
var scenarioRates = map[Scenario]float64{
	Conservation:       0.02,
	Restoration:        0.05,
	EnhancedManagement: 0.03,
	Degradation:        -0.01,
}

// ErrUnsupportedScenario is raised for unknown scenario tags. There is no
// silent default scenario.
var ErrUnsupportedScenario = errors.New("unsupported management scenario")

// ParseScenario validates a scenario tag, failing fast with the list of
// valid scenarios.
func ParseScenario(tag string) (Scenario, error) {
	s := Scenario(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := scenarioRates[s]; ok {
		return s, nil
	}
	valid := make([]string, 0, len(scenarioRates))
	for _, sc := range []Scenario{Conservation, Restoration, EnhancedManagement, Degradation} {
		valid = append(valid, string(sc))
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedScenario, tag, strings.Join(valid, ", "))
}

// Defaults for projection runs.
const (
	DefaultYears = 30
	DefaultRuns  = 1000

	// rateNoiseSigma is the standard deviation of the per-year growth
	// rate perturbation in the stochastic ensemble.
	rateNoiseSigma = 0.01
)

// Options configures a projection. The zero value selects the defaults.
type Options struct {
	// Years is the projection horizon. Zero means DefaultYears (30).
	Years int

	// Runs is the stochastic ensemble size. Zero means DefaultRuns (1000).
	Runs int

	// RNGSeed seeds the ensemble for reproducible runs. Zero means a
	// time-derived seed.
	RNGSeed uint64
}

// Trajectory is a projected carbon stock path. All series are indexed by
// year, with index 0 holding the baseline year.
type Trajectory struct {
	Scenario   Scenario
	AnnualRate float64

	Years      []int
	MeanStock  []float64
	LowerBound []float64 // 5th percentile of the ensemble
	UpperBound []float64 // 95th percentile of the ensemble

	// AnnualSequestration[y] is the mean stock change from year y-1 to y;
	// index 0 is zero. CumulativeSequestration is its running sum.
	AnnualSequestration     []float64
	CumulativeSequestration []float64

	// TotalSequestration is the cumulative sequestration at the horizon.
	TotalSequestration float64
}

// Deterministic computes only the compound growth mean path:
// stock[y] = baseline * (1+rate)^y. It is exact and needs no RNG.
func Deterministic(baseline float64, years int, scenario Scenario) ([]float64, error) {
	rate, ok := scenarioRates[scenario]
	if !ok {
		_, err := ParseScenario(string(scenario))
		return nil, err
	}
	if years <= 0 {
		years = DefaultYears
	}
	stocks := make([]float64, years+1)
	for y := 0; y <= years; y++ {
		stocks[y] = baseline * math.Pow(1+rate, float64(y))
	}
	return stocks, nil
}

// Project builds the full trajectory: the deterministic mean path plus
// 5th/95th percentile bounds from a stochastic ensemble that perturbs the
// annual rate with independent Normal(0, 0.01) noise and compounds
// year-over-year.
func Project(baseline float64, scenario Scenario, opts Options) (*Trajectory, error) {
	mean, err := Deterministic(baseline, opts.Years, scenario)
	if err != nil {
		return nil, err
	}
	rate := scenarioRates[scenario]

	years := opts.Years
	if years <= 0 {
		years = DefaultYears
	}
	runs := opts.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}
	seed := opts.RNGSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	noise := distuv.Normal{
		Mu:    0,
		Sigma: rateNoiseSigma,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}

	// ensemble[y] collects the stock at year y across runs.
	ensemble := make([][]float64, years+1)
	for y := range ensemble {
		ensemble[y] = make([]float64, runs)
	}
	for run := 0; run < runs; run++ {
		stock := baseline
		ensemble[0][run] = stock
		for y := 1; y <= years; y++ {
			stock *= 1 + rate + noise.Rand()
			ensemble[y][run] = stock
		}
	}

	traj := &Trajectory{
		Scenario:                scenario,
		AnnualRate:              rate,
		Years:                   make([]int, years+1),
		MeanStock:               mean,
		LowerBound:              make([]float64, years+1),
		UpperBound:              make([]float64, years+1),
		AnnualSequestration:     make([]float64, years+1),
		CumulativeSequestration: make([]float64, years+1),
	}
	for y := 0; y <= years; y++ {
		traj.Years[y] = y
		sort.Float64s(ensemble[y])
		traj.LowerBound[y] = stat.Quantile(0.05, stat.Empirical, ensemble[y], nil)
		traj.UpperBound[y] = stat.Quantile(0.95, stat.Empirical, ensemble[y], nil)
		if y > 0 {
			traj.AnnualSequestration[y] = mean[y] - mean[y-1]
			traj.CumulativeSequestration[y] = traj.CumulativeSequestration[y-1] + traj.AnnualSequestration[y]
		}
	}
	traj.TotalSequestration = traj.CumulativeSequestration[years]

	log.Debugw("projection complete",
		"scenario", string(scenario),
		"years", years,
		"runs", runs,
		"total_sequestration", traj.TotalSequestration)
	return traj, nil
}
