package models

import (
	"time"
)

// Scenario names one of the three forecast cases.
type Scenario string

const (
	ScenarioBest  Scenario = "best"
	ScenarioBase  Scenario = "base"
	ScenarioWorst Scenario = "worst"
)

// ForecastPoint is one projected month. Month is 1-based from the first month
// after the latest observed period.
type ForecastPoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// ForecastScenario is one case's monthly projections plus the assumptions
// text that produced them. The assumptions string is a pure function of the
// scenario parameters, so regenerating with the same inputs reproduces it
// byte for byte.
type ForecastScenario struct {
	Scenario Scenario `json:"scenario"`

	Revenue  []ForecastPoint `json:"revenue"`
	Expenses []ForecastPoint `json:"expenses"`
	CashFlow []ForecastPoint `json:"cash_flow"`

	// Annualized rates actually applied, percent.
	RevenueGrowth float64 `json:"revenue_growth"`
	ExpenseRatio  float64 `json:"expense_ratio"`

	Assumptions string `json:"assumptions"`
}

// ForecastSet bundles the three scenarios of one generation call. For every
// month m: worst revenue <= base revenue <= best revenue, and the same for
// cash flow.
type ForecastSet struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Months    int       `json:"months"`
	CreatedAt time.Time `json:"created_at"`

	Best  ForecastScenario `json:"best"`
	Base  ForecastScenario `json:"base"`
	Worst ForecastScenario `json:"worst"`
}

// Scenarios returns the three cases in fixed worst/base/best order.
func (f *ForecastSet) Scenarios() []*ForecastScenario {
	return []*ForecastScenario{&f.Worst, &f.Base, &f.Best}
}
