// Package validate checks a submitted statement period for internal
// consistency before it enters the analysis store. Findings are warnings,
// not rejections: a statement with linkage issues is still analyzable, the
// null-ratio policy degrades precision instead of refusing data.
package validate

import (
	"fmt"
	"math"

	"finhealth/pkg/models"
)

// Tolerance for linkage checks, relative to the larger side of the identity.
const linkageTolerance = 0.01

// Report lists the issues found in one statement period. Issue order is
// fixed by check order, so identical inputs produce identical reports.
type Report struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues,omitempty"`
}

// CheckPeriod runs all consistency checks over one period.
func CheckPeriod(p *models.StatementPeriod) Report {
	var issues []string

	if !p.PeriodEnd.After(p.PeriodStart) {
		issues = append(issues, "period_end must be after period_start")
	}

	// Income statement linkage: gross profit should tie to revenue - COGS.
	if p.GrossProfit != nil && p.Revenue != nil && p.CostOfGoodsSold != nil {
		expected := *p.Revenue - *p.CostOfGoodsSold
		if !within(*p.GrossProfit, expected, linkageTolerance) {
			issues = append(issues, fmt.Sprintf(
				"gross_profit %.2f does not tie to revenue - cost_of_goods_sold = %.2f", *p.GrossProfit, expected))
		}
	}

	// Balance sheet identity: assets should tie to debt + equity.
	if p.TotalAssets != nil && p.TotalDebt != nil && p.TotalEquity != nil {
		expected := *p.TotalDebt + *p.TotalEquity
		if !within(*p.TotalAssets, expected, linkageTolerance) {
			issues = append(issues, fmt.Sprintf(
				"total_assets %.2f does not tie to total_debt + total_equity = %.2f", *p.TotalAssets, expected))
		}
	}

	// Inventory and receivables are components of current assets.
	if p.CurrentAssets != nil {
		var components float64
		if p.Inventory != nil {
			components += *p.Inventory
		}
		if p.Receivables != nil {
			components += *p.Receivables
		}
		if components > *p.CurrentAssets*(1+linkageTolerance) {
			issues = append(issues, fmt.Sprintf(
				"inventory + receivables %.2f exceed current_assets %.2f", components, *p.CurrentAssets))
		}
	}

	// Stock line items cannot be negative.
	for _, c := range []struct {
		name  string
		value *float64
	}{
		{"revenue", p.Revenue},
		{"cost_of_goods_sold", p.CostOfGoodsSold},
		{"current_assets", p.CurrentAssets},
		{"current_liabilities", p.CurrentLiabilities},
		{"inventory", p.Inventory},
		{"receivables", p.Receivables},
		{"payables", p.Payables},
		{"total_debt", p.TotalDebt},
		{"total_assets", p.TotalAssets},
	} {
		if c.value != nil && *c.value < 0 {
			issues = append(issues, fmt.Sprintf("%s cannot be negative, got %.2f", c.name, *c.value))
		}
	}

	return Report{Passed: len(issues) == 0, Issues: issues}
}

// within reports whether a and b agree within tol relative to the larger
// magnitude. Exact agreement is required when both are tiny.
func within(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		return math.Abs(a-b) <= tol
	}
	return math.Abs(a-b) <= scale*tol
}
