package models

import (
	"time"
)

// FinancialMetrics holds every ratio derived from one StatementPeriod plus the
// composite health score. A nil ratio means the formula's operands were
// missing or its denominator was zero; downstream scoring skips nil ratios and
// redistributes their weight instead of treating them as zero.
//
// Margins and returns (GrossMargin, NetMargin, ROA, ROE) are percentages.
// CurrentRatio, QuickRatio, DebtToEquity, InterestCoverage and
// InventoryTurnover are plain ratios; ReceivablesDays, PayablesDays and
// CashConversionCycle are day counts.
type FinancialMetrics struct {
	CompanyID   string    `json:"company_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Liquidity
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`

	// Profitability
	GrossMargin *float64 `json:"gross_margin,omitempty"`
	NetMargin   *float64 `json:"net_margin,omitempty"`
	ROA         *float64 `json:"roa,omitempty"`
	ROE         *float64 `json:"roe,omitempty"`

	// Efficiency
	InventoryTurnover   *float64 `json:"inventory_turnover,omitempty"`
	ReceivablesDays     *float64 `json:"receivables_days,omitempty"`
	PayablesDays        *float64 `json:"payables_days,omitempty"`
	CashConversionCycle *float64 `json:"cash_conversion_cycle,omitempty"`

	// Solvency
	DebtToEquity     *float64 `json:"debt_to_equity,omitempty"`
	InterestCoverage *float64 `json:"interest_coverage,omitempty"`

	// Cash flow quality, 0-100
	CashFlowStability *float64 `json:"cash_flow_stability,omitempty"`

	// Carried facts for downstream engines (loan sizing, impact estimates,
	// trend analysis). Copied verbatim from the source period.
	Revenue  *float64 `json:"revenue,omitempty"`
	CashFlow *float64 `json:"cash_flow,omitempty"`

	// Composite score and pillar sub-scores, populated by the health scoring
	// engine. Nil pillar = every member ratio was undefined.
	HealthScore        *float64 `json:"health_score,omitempty"`
	LiquidityScore     *float64 `json:"liquidity_score,omitempty"`
	ProfitabilityScore *float64 `json:"profitability_score,omitempty"`
	EfficiencyScore    *float64 `json:"efficiency_score,omitempty"`
	SolvencyScore      *float64 `json:"solvency_score,omitempty"`
}

// HealthBand is the presentation label for a composite score. It is derived,
// never stored.
type HealthBand string

const (
	BandExcellent      HealthBand = "excellent"
	BandGood           HealthBand = "good"
	BandModerate       HealthBand = "moderate"
	BandNeedsAttention HealthBand = "needs_attention"
)

// Band maps a 0-100 composite score onto its presentation label.
func Band(score float64) HealthBand {
	switch {
	case score >= 75:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 45:
		return BandModerate
	default:
		return BandNeedsAttention
	}
}
