package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkravets/payout-lens/internal/model"
)

func figures(pairs ...model.EntityFigures) *model.ComputationResult {
	return &model.ComputationResult{PerEntity: pairs}
}

func codes(list []model.EntityFigures) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.Code
	}
	return out
}

func TestBuildRanksByProfit(t *testing.T) {
	result := figures(
		model.EntityFigures{Code: "A", Profit: 10, Revenue: 500},
		model.EntityFigures{Code: "B", Profit: 90, Revenue: 100},
		model.EntityFigures{Code: "C", Profit: -5, Revenue: 300},
	)

	ranking := Build(result, MetricProfit, 2)
	assert.False(t, ranking.NoData)
	assert.Equal(t, []string{"B", "A"}, codes(ranking.Best))
	assert.Equal(t, []string{"C", "A"}, codes(ranking.Worst))
}

func TestBuildRanksByRevenue(t *testing.T) {
	result := figures(
		model.EntityFigures{Code: "A", Profit: 10, Revenue: 500},
		model.EntityFigures{Code: "B", Profit: 90, Revenue: 100},
	)

	ranking := Build(result, MetricRevenue, 5)
	assert.Equal(t, []string{"A", "B"}, codes(ranking.Best))
	assert.Equal(t, []string{"B", "A"}, codes(ranking.Worst))
}

func TestBuildTiesKeepSourceOrder(t *testing.T) {
	result := figures(
		model.EntityFigures{Code: "first", Profit: 10},
		model.EntityFigures{Code: "second", Profit: 10},
		model.EntityFigures{Code: "third", Profit: 10},
	)

	ranking := Build(result, MetricProfit, 3)
	assert.Equal(t, []string{"first", "second", "third"}, codes(ranking.Best))
	assert.Equal(t, []string{"first", "second", "third"}, codes(ranking.Worst))
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	result := figures(
		model.EntityFigures{Code: "A", Profit: 1},
		model.EntityFigures{Code: "B", Profit: 2},
	)

	Build(result, MetricProfit, 5)
	assert.Equal(t, []string{"A", "B"}, codes(result.PerEntity))
}

func TestBuildNoData(t *testing.T) {
	assert.True(t, Build(nil, MetricProfit, 5).NoData)
	assert.True(t, Build(&model.ComputationResult{}, MetricProfit, 5).NoData)
}

func TestBuildDefaultsTopN(t *testing.T) {
	var entities []model.EntityFigures
	for _, code := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		entities = append(entities, model.EntityFigures{Code: code})
	}

	ranking := Build(figures(entities...), MetricProfit, 0)
	assert.Len(t, ranking.Best, DefaultTopN)
	assert.Len(t, ranking.Worst, DefaultTopN)
}

func TestWarnings(t *testing.T) {
	assert.Nil(t, Warnings(nil))
	assert.Empty(t, Warnings(figures(model.EntityFigures{Code: "A"})))

	degraded := &model.ComputationResult{
		Degraded:  true,
		PerEntity: []model.EntityFigures{{Code: "A"}},
	}
	assert.Len(t, Warnings(degraded), 1)

	empty := &model.ComputationResult{Degraded: true}
	assert.Len(t, Warnings(empty), 2)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345000001))
	assert.Equal(t, -0.1, Round2(-0.10499))
	assert.Equal(t, 100.0, Round2(99.999))
}
