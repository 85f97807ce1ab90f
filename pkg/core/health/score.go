// Package health combines a period's ratios with industry benchmarks into a
// 0-100 composite score across four pillars: liquidity, profitability,
// efficiency and solvency. Undefined ratios are excluded with their weight
// redistributed proportionally among the defined remainder, at the member
// level within a pillar and again at the pillar level within the composite.
package health

import (
	"finhealth/pkg/models"
)

// Config carries the pillar weights. Weights are relative shares; pillars
// whose members are all undefined drop out and the remaining weights are
// renormalized to sum to 1.
type Config struct {
	LiquidityWeight     float64 `yaml:"liquidity_weight"`
	ProfitabilityWeight float64 `yaml:"profitability_weight"`
	EfficiencyWeight    float64 `yaml:"efficiency_weight"`
	SolvencyWeight      float64 `yaml:"solvency_weight"`
}

// DefaultConfig returns the stock pillar weighting.
func DefaultConfig() Config {
	return Config{
		LiquidityWeight:     0.25,
		ProfitabilityWeight: 0.35,
		EfficiencyWeight:    0.20,
		SolvencyWeight:      0.20,
	}
}

// Result holds the composite score and the per-pillar sub-scores. A nil
// pillar score means every member ratio of that pillar was undefined.
type Result struct {
	Composite     float64
	Liquidity     *float64
	Profitability *float64
	Efficiency    *float64
	Solvency      *float64
}

// Score computes the composite health score for one metrics record against
// its industry benchmark. Deterministic and side-effect free.
func Score(cfg Config, m *models.FinancialMetrics, bench *models.IndustryBenchmark) Result {
	res := Result{
		Liquidity: pillar(
			member{m.CurrentRatio, bench.AvgCurrentRatio, higherBetter},
			member{m.QuickRatio, bench.AvgQuickRatio, higherBetter},
		),
		Profitability: pillar(
			member{m.GrossMargin, bench.AvgGrossMargin, higherBetter},
			member{m.NetMargin, bench.AvgNetMargin, higherBetter},
			member{m.ROA, bench.AvgROA, higherBetter},
			member{m.ROE, bench.AvgROE, higherBetter},
		),
		Efficiency: pillar(
			member{m.InventoryTurnover, bench.AvgInventoryTurnover, higherBetter},
			member{m.ReceivablesDays, bench.AvgReceivablesDays, lowerBetter},
			member{m.CashConversionCycle, bench.AvgCashConversionCycle, lowerBetter},
		),
		Solvency: pillar(
			member{m.DebtToEquity, bench.AvgDebtToEquity, lowerBetter},
			member{m.InterestCoverage, bench.AvgInterestCoverage, higherBetter},
		),
	}

	type weighted struct {
		score  *float64
		weight float64
	}
	pillars := []weighted{
		{res.Liquidity, cfg.LiquidityWeight},
		{res.Profitability, cfg.ProfitabilityWeight},
		{res.Efficiency, cfg.EfficiencyWeight},
		{res.Solvency, cfg.SolvencyWeight},
	}

	var sum, weightSum float64
	for _, p := range pillars {
		if p.score == nil {
			continue
		}
		sum += *p.score * p.weight
		weightSum += p.weight
	}
	if weightSum > 0 {
		res.Composite = clamp(sum / weightSum)
	}
	return res
}

// Apply runs Score and stamps the result onto the metrics record.
func Apply(cfg Config, m *models.FinancialMetrics, bench *models.IndustryBenchmark) Result {
	res := Score(cfg, m, bench)
	m.HealthScore = &res.Composite
	m.LiquidityScore = res.Liquidity
	m.ProfitabilityScore = res.Profitability
	m.EfficiencyScore = res.Efficiency
	m.SolvencyScore = res.Solvency
	return res
}

type member struct {
	value     *float64
	benchmark float64
	normalize func(value, benchmark float64) float64
}

// pillar averages the normalized scores of its defined members. Members with
// a missing value or a non-positive benchmark are skipped; their weight moves
// to the rest. All members undefined yields nil.
func pillar(members ...member) *float64 {
	var sum float64
	var n int
	for _, mb := range members {
		if mb.value == nil || mb.benchmark <= 0 {
			continue
		}
		sum += mb.normalize(*mb.value, mb.benchmark)
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
