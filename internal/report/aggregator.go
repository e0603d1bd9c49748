// Package report turns per-entity figures into ranked top-N views and
// a warning set for degraded inputs.
package report

import (
	"math"
	"sort"

	"github.com/mkravets/payout-lens/internal/model"
)

// Metric selects what the rankings are sorted by.
type Metric string

// Ranking metrics.
const (
	// MetricProfit ranks entities by allocated profit.
	MetricProfit Metric = "profit"
	// MetricRevenue ranks entities by raw revenue.
	MetricRevenue Metric = "revenue"
)

// DefaultTopN is the ranking size used when the caller does not choose.
const DefaultTopN = 5

// Ranking holds the top and bottom entities by one metric. NoData is
// set instead of silently returning empty lists when the report had no
// entity codes at all.
type Ranking struct {
	Metric Metric
	Best   []model.EntityFigures
	Worst  []model.EntityFigures
	NoData bool
}

// Build produces the top-N ranking for a computation result. Ties keep
// first-occurrence order of the entity codes in the source table.
func Build(result *model.ComputationResult, metric Metric, n int) Ranking {
	if n <= 0 {
		n = DefaultTopN
	}

	ranking := Ranking{Metric: metric}
	if result == nil || len(result.PerEntity) == 0 {
		ranking.NoData = true
		return ranking
	}

	value := func(f model.EntityFigures) float64 {
		if metric == MetricRevenue {
			return f.Revenue
		}
		return f.Profit
	}

	descending := make([]model.EntityFigures, len(result.PerEntity))
	copy(descending, result.PerEntity)
	sort.SliceStable(descending, func(i, j int) bool {
		return value(descending[i]) > value(descending[j])
	})

	ascending := make([]model.EntityFigures, len(result.PerEntity))
	copy(ascending, result.PerEntity)
	sort.SliceStable(ascending, func(i, j int) bool {
		return value(ascending[i]) < value(ascending[j])
	})

	ranking.Best = truncate(descending, n)
	ranking.Worst = truncate(ascending, n)
	return ranking
}

// Warnings lists the quality caveats a reader must know about.
func Warnings(result *model.ComputationResult) []string {
	if result == nil {
		return nil
	}

	var warnings []string
	if result.Degraded {
		warnings = append(warnings,
			"no quantity or operation column was found: cost of goods sold is reported as zero")
	}
	if len(result.PerEntity) == 0 {
		warnings = append(warnings,
			"no entity codes present: per-product breakdown is unavailable")
	}
	return warnings
}

// Round2 rounds a monetary value to 2 decimal places. It belongs at
// the presentation boundary only; internal accumulation stays
// unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncate(figures []model.EntityFigures, n int) []model.EntityFigures {
	if len(figures) > n {
		figures = figures[:n]
	}
	return figures
}
