// Package metrics converts one statement period's raw line items into
// normalized financial ratios. Every formula follows the missing-operand
// policy: a zero denominator or absent operand yields a nil ratio, not an
// error and not zero, so a single missing field degrades precision instead of
// aborting the whole analysis.
package metrics

import (
	"fmt"

	"finhealth/pkg/models"
)

// Compute derives all ratios for one period. prior, when available, feeds the
// average-inventory turnover denominator and the cash flow stability score;
// pass nil for a company's first period. The result is a pure function of the
// inputs: identical periods produce bit-identical metrics.
func Compute(period, prior *models.StatementPeriod) (*models.FinancialMetrics, error) {
	if period == nil {
		return nil, fmt.Errorf("no statement period: %w", models.ErrIncompleteData)
	}
	if empty(period) {
		return nil, fmt.Errorf("statement period has no line items: %w", models.ErrIncompleteData)
	}

	m := &models.FinancialMetrics{
		CompanyID:   period.CompanyID,
		PeriodStart: period.PeriodStart,
		PeriodEnd:   period.PeriodEnd,
		Revenue:     copyVal(period.Revenue),
		CashFlow:    copyVal(period.CashFlow),
	}

	// Liquidity
	m.CurrentRatio = div(period.CurrentAssets, period.CurrentLiabilities)
	m.QuickRatio = div(sub(period.CurrentAssets, period.Inventory), period.CurrentLiabilities)

	// Profitability (percent)
	grossProfit := grossProfit(period)
	m.GrossMargin = pct(div(grossProfit, period.Revenue))
	m.NetMargin = pct(div(period.NetProfit, period.Revenue))
	m.ROA = pct(div(period.NetProfit, period.TotalAssets))
	m.ROE = pct(div(period.NetProfit, period.TotalEquity))

	// Efficiency
	m.InventoryTurnover = div(period.CostOfGoodsSold, averageInventory(period, prior))
	m.ReceivablesDays = scale(div(period.Receivables, period.Revenue), 365)
	m.PayablesDays = scale(div(period.Payables, period.Revenue), 365)
	m.CashConversionCycle = cashConversionCycle(m)

	// Solvency
	m.DebtToEquity = div(period.TotalDebt, period.TotalEquity)
	m.InterestCoverage = interestCoverage(period)

	// Cash flow quality
	m.CashFlowStability = stability(trailingCashFlows(period, prior))

	return m, nil
}

// grossProfit returns the reported gross profit, deriving revenue - COGS when
// the statement omits the line but carries both components.
func grossProfit(p *models.StatementPeriod) *float64 {
	if p.GrossProfit != nil {
		return p.GrossProfit
	}
	return sub(p.Revenue, p.CostOfGoodsSold)
}

// averageInventory averages closing inventory with the prior period's, falling
// back to the current value alone when no prior period exists.
func averageInventory(p, prior *models.StatementPeriod) *float64 {
	if p.Inventory == nil {
		return nil
	}
	priorInv := *p.Inventory
	if prior != nil && prior.Inventory != nil {
		priorInv = *prior.Inventory
	}
	avg := (*p.Inventory + priorInv) / 2
	return &avg
}

// interestCoverage = (net profit + interest expense) / interest expense, an
// EBIT proxy when operating income is not reported separately.
func interestCoverage(p *models.StatementPeriod) *float64 {
	if p.NetProfit == nil || p.InterestExpense == nil || *p.InterestExpense == 0 {
		return nil
	}
	v := (*p.NetProfit + *p.InterestExpense) / *p.InterestExpense
	return &v
}

// cashConversionCycle = inventory days + receivables days - payables days.
// Defined only when all three components are.
func cashConversionCycle(m *models.FinancialMetrics) *float64 {
	if m.InventoryTurnover == nil || *m.InventoryTurnover <= 0 ||
		m.ReceivablesDays == nil || m.PayablesDays == nil {
		return nil
	}
	v := 365 / *m.InventoryTurnover + *m.ReceivablesDays - *m.PayablesDays
	return &v
}

func trailingCashFlows(p, prior *models.StatementPeriod) []float64 {
	var flows []float64
	if prior != nil && prior.CashFlow != nil {
		flows = append(flows, *prior.CashFlow)
	}
	if p.CashFlow != nil {
		flows = append(flows, *p.CashFlow)
	}
	return flows
}

func empty(p *models.StatementPeriod) bool {
	items := []*float64{
		p.Revenue, p.CostOfGoodsSold, p.GrossProfit, p.OperatingExpenses,
		p.NetProfit, p.InterestExpense, p.CurrentAssets, p.CurrentLiabilities,
		p.Inventory, p.Receivables, p.Payables, p.TotalDebt, p.TotalEquity,
		p.TotalAssets, p.CashFlow,
	}
	for _, it := range items {
		if it != nil {
			return false
		}
	}
	return true
}

// =============================================================================
// NULLABLE ARITHMETIC
// =============================================================================

// div returns a/b, nil on missing operand or zero denominator.
func div(a, b *float64) *float64 {
	if a == nil || b == nil || *b == 0 {
		return nil
	}
	v := *a / *b
	return &v
}

// sub returns a-b, nil on missing operand.
func sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

// pct converts a fraction to a percentage, preserving nil.
func pct(v *float64) *float64 {
	return scale(v, 100)
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	s := *v * factor
	return &s
}

func copyVal(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
