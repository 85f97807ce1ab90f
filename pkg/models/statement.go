package models

import (
	"time"
)

// Industry identifies the benchmark row a company is scored against.
type Industry string

const (
	IndustryManufacturing Industry = "manufacturing"
	IndustryRetail        Industry = "retail"
	IndustryAgriculture   Industry = "agriculture"
	IndustryServices      Industry = "services"
	IndustryLogistics     Industry = "logistics"
	IndustryEcommerce     Industry = "ecommerce"
)

// Company is the business profile under assessment. Registration identifiers
// feed the compliance risk sub-score; AnnualRevenue is a declared fallback
// when no statement history is available.
type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Industry           Industry  `json:"industry"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	TaxID              string    `json:"tax_id,omitempty"`
	IncorporationDate  time.Time `json:"incorporation_date,omitempty"`
	AnnualRevenue      *float64  `json:"annual_revenue,omitempty"`
	EmployeeCount      int       `json:"employee_count,omitempty"`
}

// StatementPeriod is one reporting period's raw line items as produced by the
// ingestion collaborator. A nil field means the item was absent from the
// uploaded statement; absent is not zero and every downstream ratio treats it
// as unknown. Records are immutable once ingested.
type StatementPeriod struct {
	CompanyID   string    `json:"company_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Income statement
	Revenue           *float64 `json:"revenue,omitempty"`
	CostOfGoodsSold   *float64 `json:"cost_of_goods_sold,omitempty"`
	GrossProfit       *float64 `json:"gross_profit,omitempty"`
	OperatingExpenses *float64 `json:"operating_expenses,omitempty"`
	NetProfit         *float64 `json:"net_profit,omitempty"`
	InterestExpense   *float64 `json:"interest_expense,omitempty"`

	// Balance sheet
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`
	Inventory          *float64 `json:"inventory,omitempty"`
	Receivables        *float64 `json:"receivables,omitempty"`
	Payables           *float64 `json:"payables,omitempty"`
	TotalDebt          *float64 `json:"total_debt,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`

	// Cash flow
	CashFlow *float64 `json:"cash_flow,omitempty"`
}

// Days returns the period length in days (at least 1).
func (p *StatementPeriod) Days() float64 {
	d := p.PeriodEnd.Sub(p.PeriodStart).Hours() / 24
	if d < 1 {
		return 1
	}
	return d
}

// Float64Ptr is a convenience for building statements in callers and tests.
func Float64Ptr(f float64) *float64 { return &f }
