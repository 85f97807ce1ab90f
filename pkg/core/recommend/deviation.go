package recommend

import (
	"fmt"
	"math"

	"finhealth/pkg/models"
)

type pillar int

const (
	pillarLiquidity pillar = iota
	pillarProfitability
	pillarEfficiency
	pillarSolvency
)

// impactKind selects how a benchmark gap converts into a monetary estimate.
type impactKind int

const (
	// No defensible monetary mapping; impact stays nil.
	impactNone impactKind = iota
	// Margin gap in percentage points applied to annual revenue.
	impactMarginPoints
	// Day gap converted to the revenue it keeps tied up.
	impactDays
	// Turnover gap converted to inventory days first, then treated as days.
	impactTurnoverDays
	// Leverage gap proxied as an interest saving of up to 4% of revenue.
	impactLeverage
)

// deviation is one watched metric against its benchmark. label feeds the
// description; guidance is the action sentence appended to it.
type deviation struct {
	label       string
	pillar      pillar
	category    models.RecommendationCategory
	title       string
	guidance    string
	value       *float64
	benchmark   float64
	lowerBetter bool
	kind        impactKind
	effort      models.Effort
}

// relativeDeviation measures how far the value sits on the wrong side of the
// benchmark, as a fraction of the benchmark. Zero or negative means at or
// better than benchmark.
func (d deviation) relativeDeviation() float64 {
	if d.lowerBetter {
		return (*d.value - d.benchmark) / d.benchmark
	}
	return (d.benchmark - *d.value) / d.benchmark
}

func (d deviation) describe() string {
	return fmt.Sprintf("%s is %.1f against an industry benchmark of %.1f. %s",
		d.label, *d.value, d.benchmark, d.guidance)
}

// impact estimates the annual monetary value of closing the configured
// fraction of the gap. Without annual revenue there is no defensible scale
// and the impact stays nil.
func (d deviation) impact(cfg Config, revenue *float64) *float64 {
	if d.kind == impactNone || revenue == nil || *revenue <= 0 {
		return nil
	}

	var amount float64
	switch d.kind {
	case impactMarginPoints:
		amount = *revenue * (d.benchmark - *d.value) / 100 * cfg.GapClosureFraction
	case impactDays:
		gap := *d.value - d.benchmark
		if !d.lowerBetter {
			gap = d.benchmark - *d.value
		}
		amount = *revenue * gap / 365 * cfg.GapClosureFraction
	case impactTurnoverDays:
		if *d.value <= 0 || d.benchmark <= 0 {
			return nil
		}
		gapDays := 365 / *d.value - 365/d.benchmark
		amount = *revenue * gapDays / 365 * cfg.GapClosureFraction
	case impactLeverage:
		rel := d.relativeDeviation()
		if rel > 1 {
			rel = 1
		}
		amount = *revenue * 0.04 * rel
	}

	if amount <= 0 {
		return nil
	}
	rounded := math.Round(amount*100) / 100
	return &rounded
}

// watchedMetrics enumerates every metric the deviation scan covers, in the
// fixed order that keeps equal-rank output stable.
func watchedMetrics(m *models.FinancialMetrics, b *models.IndustryBenchmark) []deviation {
	return []deviation{
		{
			label: "Current ratio", pillar: pillarLiquidity,
			category: models.CategoryWorkingCapital,
			title:    "Improve Liquidity Position",
			guidance: "Build a cash buffer and stagger short-term obligations to lift cover over current liabilities.",
			value:    m.CurrentRatio, benchmark: b.AvgCurrentRatio,
			kind: impactNone, effort: models.EffortMedium,
		},
		{
			label: "Quick ratio", pillar: pillarLiquidity,
			category: models.CategoryWorkingCapital,
			title:    "Strengthen Quick Liquidity",
			guidance: "Convert slow-moving inventory to cash; liquidity excluding stock is thin.",
			value:    m.QuickRatio, benchmark: b.AvgQuickRatio,
			kind: impactNone, effort: models.EffortMedium,
		},
		{
			label: "Gross margin", pillar: pillarProfitability,
			category: models.CategoryCostOptimization,
			title:    "Improve Gross Margin",
			guidance: "Renegotiate supplier pricing and review the product mix toward higher-margin lines.",
			value:    m.GrossMargin, benchmark: b.AvgGrossMargin,
			kind: impactMarginPoints, effort: models.EffortMedium,
		},
		{
			label: "Net margin", pillar: pillarProfitability,
			category: models.CategoryCostOptimization,
			title:    "Improve Net Profit Margin",
			guidance: "Audit overheads and financing costs; peers keep more of each unit of revenue.",
			value:    m.NetMargin, benchmark: b.AvgNetMargin,
			kind: impactMarginPoints, effort: models.EffortMedium,
		},
		{
			label: "Return on assets", pillar: pillarProfitability,
			category: models.CategoryCostOptimization,
			title:    "Lift Return on Assets",
			guidance: "Retire or redeploy underproductive assets; the asset base is outrunning the profit it generates.",
			value:    m.ROA, benchmark: b.AvgROA,
			kind: impactNone, effort: models.EffortHigh,
		},
		{
			label: "Inventory turnover", pillar: pillarEfficiency,
			category: models.CategoryWorkingCapital,
			title:    "Optimize Inventory Management",
			guidance: "Tighten reorder points and clear dead stock; inventory turns slower than the industry.",
			value:    m.InventoryTurnover, benchmark: b.AvgInventoryTurnover,
			kind: impactTurnoverDays, effort: models.EffortMedium,
		},
		{
			label: "Receivables days", pillar: pillarEfficiency,
			category: models.CategoryWorkingCapital,
			title:    "Accelerate Receivables Collection",
			guidance: "Shorten payment terms, invoice on delivery and chase overdues weekly.",
			value:    m.ReceivablesDays, benchmark: b.AvgReceivablesDays,
			lowerBetter: true, kind: impactDays, effort: models.EffortLow,
		},
		{
			label: "Payables days", pillar: pillarEfficiency,
			category: models.CategoryWorkingCapital,
			title:    "Negotiate Extended Supplier Terms",
			guidance: "Suppliers are being paid faster than the industry norm; longer terms free working capital at no cost.",
			value:    m.PayablesDays, benchmark: b.AvgPayablesDays,
			kind: impactDays, effort: models.EffortLow,
		},
		{
			label: "Cash conversion cycle", pillar: pillarEfficiency,
			category: models.CategoryWorkingCapital,
			title:    "Reduce Cash Conversion Cycle",
			guidance: "Compress the gap between paying suppliers and collecting from customers.",
			value:    m.CashConversionCycle, benchmark: b.AvgCashConversionCycle,
			lowerBetter: true, kind: impactDays, effort: models.EffortMedium,
		},
		{
			label: "Debt to equity", pillar: pillarSolvency,
			category: models.CategoryFinancialProduct,
			title:    "Optimize Debt Structure",
			guidance: "Pay down expensive debt or raise equity; leverage sits above the industry norm.",
			value:    m.DebtToEquity, benchmark: b.AvgDebtToEquity,
			lowerBetter: true, kind: impactLeverage, effort: models.EffortHigh,
		},
		{
			label: "Interest coverage", pillar: pillarSolvency,
			category: models.CategoryFinancialProduct,
			title:    "Improve Interest Coverage",
			guidance: "Refinance toward lower rates; operating profit covers interest more thinly than peers.",
			value:    m.InterestCoverage, benchmark: b.AvgInterestCoverage,
			kind: impactNone, effort: models.EffortHigh,
		},
	}
}
