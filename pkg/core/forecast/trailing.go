package forecast

import (
	"fmt"
	"math"

	"finhealth/pkg/core/metrics"
	"finhealth/pkg/models"
)

// baseMonthlyRevenue scales the latest observed revenue to a monthly figure
// using the period's actual length. Periods without revenue are skipped; no
// revenue anywhere is ErrIncompleteData.
func baseMonthlyRevenue(ordered []*models.StatementPeriod) (float64, error) {
	for i := len(ordered) - 1; i >= 0; i-- {
		p := ordered[i]
		if p.Revenue == nil {
			continue
		}
		monthsInPeriod := p.Days() / 30.4375
		if monthsInPeriod < 1 {
			monthsInPeriod = 1
		}
		return *p.Revenue / monthsInPeriod, nil
	}
	return 0, fmt.Errorf("no revenue in statement history: %w", models.ErrIncompleteData)
}

// trailingGrowth estimates the annualized compound revenue growth between the
// earliest and latest periods with revenue. A single usable period falls back
// to the industry's expected revenue growth.
func trailingGrowth(ordered []*models.StatementPeriod, bench *models.IndustryBenchmark) float64 {
	var first, last *models.StatementPeriod
	for _, p := range ordered {
		if p.Revenue == nil || *p.Revenue <= 0 {
			continue
		}
		if first == nil {
			first = p
		}
		last = p
	}

	fallback := bench.ExpectedRevenueGrowth / 100
	if first == nil || last == nil || first == last {
		return fallback
	}

	years := last.PeriodEnd.Sub(first.PeriodEnd).Hours() / 24 / 365
	if years <= 0 {
		return fallback
	}

	// Compare like for like: revenue per day, so a quarter against a full
	// year does not read as collapse.
	firstRate := *first.Revenue / first.Days()
	lastRate := *last.Revenue / last.Days()
	if firstRate <= 0 {
		return fallback
	}
	return math.Pow(lastRate/firstRate, 1/years) - 1
}

func clampGrowth(cfg Config, g float64) float64 {
	if g < cfg.MinAnnualGrowth {
		return cfg.MinAnnualGrowth
	}
	if g > cfg.MaxAnnualGrowth {
		return cfg.MaxAnnualGrowth
	}
	return g
}

// expenseRatio is the latest observed expense/revenue ratio. Expenses are
// COGS plus operating expenses when reported, else revenue minus net profit;
// with neither, the configured default applies.
func expenseRatio(cfg Config, ordered []*models.StatementPeriod) float64 {
	for i := len(ordered) - 1; i >= 0; i-- {
		p := ordered[i]
		if p.Revenue == nil || *p.Revenue <= 0 {
			continue
		}

		if p.CostOfGoodsSold != nil || p.OperatingExpenses != nil {
			var exp float64
			if p.CostOfGoodsSold != nil {
				exp += *p.CostOfGoodsSold
			}
			if p.OperatingExpenses != nil {
				exp += *p.OperatingExpenses
			}
			return clampRatio(exp / *p.Revenue)
		}
		if p.NetProfit != nil {
			return clampRatio((*p.Revenue - *p.NetProfit) / *p.Revenue)
		}
	}
	return cfg.DefaultExpenseRatio
}

func clampRatio(r float64) float64 {
	if r < 0.05 {
		return 0.05
	}
	if r > 2.0 {
		return 2.0
	}
	return r
}

// workingCapitalDrag converts the latest cash conversion cycle into the
// fraction of each month's revenue increase tied up in working capital. An
// unknown or negative cycle contributes no drag.
func workingCapitalDrag(ordered []*models.StatementPeriod) float64 {
	latest := ordered[len(ordered)-1]
	var prior *models.StatementPeriod
	if len(ordered) > 1 {
		prior = ordered[len(ordered)-2]
	}

	m, err := metrics.Compute(latest, prior)
	if err != nil || m.CashConversionCycle == nil || *m.CashConversionCycle <= 0 {
		return 0
	}
	drag := *m.CashConversionCycle / 365
	if drag > 0.5 {
		drag = 0.5
	}
	return drag
}
