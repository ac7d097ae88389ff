package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/binstar/internal/automation"
	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/metrics"
	"github.com/san-kum/binstar/internal/sim"
)

var ErrNoCandidate = errors.New("no parameter combination completed")

// GridSearch evaluates every combination of parameter values and keeps the
// one with the lowest metric. Parameter names are those of
// [automation.Apply].
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Candidates returns the number of combinations Search will run.
func (g *GridSearch) Candidates() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search starts every candidate from a copy of base. Combinations that fail
// validation or stop on a degenerate state are skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, params map[string]float64, metricName string) (float64, bool, error) {
	cfg := base.Clone()
	for _, name := range g.paramNames {
		if err := automation.Apply(cfg, name, params[name]); err != nil {
			return 0, false, err
		}
	}
	if cfg.Validate() != nil {
		return 0, false, nil
	}

	s := sim.New()
	for _, m := range metrics.Default(cfg.Gravity) {
		s.AddMetric(m)
	}
	a, b := cfg.Pair()
	result, err := s.Run(ctx, a, b, cfg.SimConfig())
	if err != nil {
		if ctx.Err() != nil {
			return 0, false, err
		}
		return 0, false, nil
	}
	if len(result.Errors) > 0 {
		return 0, false, nil
	}
	val, ok := result.Metrics[metricName]
	if !ok && metricName == "energy_drift" {
		val, ok = result.EnergyDrift, true
	}
	return val, ok && !math.IsNaN(val), nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		val, ok, err := g.evaluate(ctx, base, current, metricName)
		if err != nil || !ok {
			return err
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
