package models

// IndustryBenchmark is one row of reference ratios for an industry. Values
// mirror the ratio units of FinancialMetrics (margins and
// ExpectedRevenueGrowth in percent, days in days). The row keyed by
// DefaultIndustry backs every industry without a row of its own, so a lookup
// never comes back empty.
type IndustryBenchmark struct {
	Industry Industry `json:"industry"`

	AvgCurrentRatio        float64 `json:"avg_current_ratio"`
	AvgQuickRatio          float64 `json:"avg_quick_ratio"`
	AvgGrossMargin         float64 `json:"avg_gross_margin"`
	AvgNetMargin           float64 `json:"avg_net_margin"`
	AvgROA                 float64 `json:"avg_roa"`
	AvgROE                 float64 `json:"avg_roe"`
	AvgInventoryTurnover   float64 `json:"avg_inventory_turnover"`
	AvgReceivablesDays     float64 `json:"avg_receivables_days"`
	AvgPayablesDays        float64 `json:"avg_payables_days"`
	AvgCashConversionCycle float64 `json:"avg_cash_conversion_cycle"`
	AvgDebtToEquity        float64 `json:"avg_debt_to_equity"`
	AvgInterestCoverage    float64 `json:"avg_interest_coverage"`

	// Expected annual revenue growth, percent.
	ExpectedRevenueGrowth float64 `json:"expected_revenue_growth"`
}

// DefaultIndustry keys the global-default benchmark row.
const DefaultIndustry Industry = "default"
