package carbon

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Per-pool base coefficients of variation, from IPCC good-practice
// guidance. The belowground and deadwood pools are the least directly
// observed, hence the widest.
var poolBaseCV = map[PoolKind]float64{
	PoolAboveground: 0.20,
	PoolBelowground: 0.50,
	PoolDeadwood:    0.60,
	PoolLitter:      0.40,
	PoolSoil:        0.30,
}

var poolSampleOrder = []PoolKind{
	PoolAboveground, PoolBelowground, PoolDeadwood, PoolLitter, PoolSoil,
}

// UncertaintyEngine estimates a confidence interval for a plot's total
// carbon by Monte Carlo simulation over the computed pools. The random
// source is owned by the engine instance, never shared globally, so
// concurrent plot calculations don't interfere and seeded runs reproduce.
type UncertaintyEngine struct {
	iterations int
	src        rand.Source
}

// NewUncertaintyEngine creates an engine drawing from a PCG source seeded
// with seed. A zero seed derives one from the clock.
func NewUncertaintyEngine(iterations int, seed uint64) *UncertaintyEngine {
	if iterations <= 0 {
		iterations = DefaultMonteCarloIterations
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UncertaintyEngine{
		iterations: iterations,
		src:        rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// Interval returns the 2.5th and 97.5th percentile of simulated total
// carbon. Each pool with a positive value is sampled from a log-normal
// distribution whose mean is the pool value and whose standard deviation is
// the value times the pool's effective coefficient of variation; zero pools
// contribute a constant zero. measurementQuality in [0, 1] scales the CVs:
// effective CV = base CV * (2 - quality).
func (e *UncertaintyEngine) Interval(pools map[PoolKind]float64, measurementQuality float64) (low, high float64) {
	multiplier := 2.0 - clamp01(measurementQuality)

	// Fixed pool order keeps seeded runs reproducible; ranging over the
	// map directly would consume the source in a different order each run.
	var samplers []distuv.LogNormal
	for _, kind := range poolSampleOrder {
		value := pools[kind]
		if value <= 0 {
			continue
		}
		cv := poolBaseCV[kind] * multiplier
		mu, sigma := lognormalParams(value, value*cv)
		samplers = append(samplers, distuv.LogNormal{Mu: mu, Sigma: sigma, Src: e.src})
	}
	if len(samplers) == 0 {
		return 0, 0
	}

	totals := make([]float64, e.iterations)
	for i := range totals {
		var sum float64
		for _, s := range samplers {
			sum += s.Rand()
		}
		totals[i] = sum
	}

	sort.Float64s(totals)
	low = stat.Quantile(0.025, stat.Empirical, totals, nil)
	high = stat.Quantile(0.975, stat.Empirical, totals, nil)
	return low, high
}

// lognormalParams moment-matches the underlying normal parameters of a
// log-normal distribution with the given arithmetic mean and standard
// deviation.
func lognormalParams(mean, sd float64) (mu, sigma float64) {
	cv := sd / mean
	sigma2 := math.Log(1 + cv*cv)
	return math.Log(mean) - sigma2/2, math.Sqrt(sigma2)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
