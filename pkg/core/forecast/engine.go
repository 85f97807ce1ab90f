// Package forecast projects revenue, expenses and cash flow over a bounded
// monthly horizon for best, base and worst scenarios. The base scenario
// compounds the trailing revenue growth observed in the statement history;
// the other two apply configured multipliers to the growth rate and to the
// expense ratio. Output is a pure function of the inputs.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"finhealth/pkg/models"
)

// Config bounds the horizon and carries the scenario policy.
type Config struct {
	MinMonths int `yaml:"min_months"`
	MaxMonths int `yaml:"max_months"`

	// Growth rate multipliers. Applied so the ordering best >= base >= worst
	// holds even when the base growth rate is negative.
	BestGrowthMultiplier  float64 `yaml:"best_growth_multiplier"`
	WorstGrowthMultiplier float64 `yaml:"worst_growth_multiplier"`

	// Expense ratio multipliers relative to the observed ratio.
	BestExpenseMultiplier  float64 `yaml:"best_expense_multiplier"`
	WorstExpenseMultiplier float64 `yaml:"worst_expense_multiplier"`

	// Fallback expense ratio when the history carries no expense data.
	DefaultExpenseRatio float64 `yaml:"default_expense_ratio"`

	// Annualized growth estimates are clamped to this band before use, so a
	// two-point fluke cannot explode the projection.
	MinAnnualGrowth float64 `yaml:"min_annual_growth"`
	MaxAnnualGrowth float64 `yaml:"max_annual_growth"`
}

// DefaultConfig returns the stock forecast policy.
func DefaultConfig() Config {
	return Config{
		MinMonths:              6,
		MaxMonths:              24,
		BestGrowthMultiplier:   1.5,
		WorstGrowthMultiplier:  0.4,
		BestExpenseMultiplier:  0.95,
		WorstExpenseMultiplier: 1.08,
		DefaultExpenseRatio:    0.70,
		MinAnnualGrowth:        -0.50,
		MaxAnnualGrowth:        2.00,
	}
}

// Generate builds the three-scenario forecast set from a statement history
// (ordered by period end; re-sorted defensively) over the given horizon.
func Generate(cfg Config, history []*models.StatementPeriod, bench *models.IndustryBenchmark, months int) (*models.ForecastSet, error) {
	if months < cfg.MinMonths || months > cfg.MaxMonths {
		return nil, fmt.Errorf("horizon %d outside [%d,%d]: %w", months, cfg.MinMonths, cfg.MaxMonths, models.ErrInvalidHorizon)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no statement history: %w", models.ErrIncompleteData)
	}

	ordered := make([]*models.StatementPeriod, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PeriodEnd.Before(ordered[j].PeriodEnd)
	})

	monthlyRevenue, err := baseMonthlyRevenue(ordered)
	if err != nil {
		return nil, err
	}
	growth := clampGrowth(cfg, trailingGrowth(ordered, bench))
	ratio := expenseRatio(cfg, ordered)
	drag := workingCapitalDrag(ordered)

	bestG, worstG := scenarioGrowth(cfg, growth)

	set := &models.ForecastSet{
		ID:        uuid.New().String(),
		CompanyID: ordered[len(ordered)-1].CompanyID,
		Months:    months,
		CreatedAt: time.Now().UTC(),

		Best:  project(models.ScenarioBest, monthlyRevenue, bestG, ratio*cfg.BestExpenseMultiplier, drag, months),
		Base:  project(models.ScenarioBase, monthlyRevenue, growth, ratio, drag, months),
		Worst: project(models.ScenarioWorst, monthlyRevenue, worstG, ratio*cfg.WorstExpenseMultiplier, drag, months),
	}
	enforceOrdering(set)
	return set, nil
}

// scenarioGrowth applies the configured multipliers. The larger product goes
// to the best case, so best >= base >= worst survives a negative base rate.
func scenarioGrowth(cfg Config, g float64) (best, worst float64) {
	a := g * cfg.BestGrowthMultiplier
	b := g * cfg.WorstGrowthMultiplier
	return math.Max(a, b), math.Min(a, b)
}

// project compounds one scenario month by month. growth is annualized and
// applied at rate/12; the working capital drag absorbs cash proportional to
// each month's revenue increase.
func project(scenario models.Scenario, monthlyRevenue, growth, ratio, drag float64, months int) models.ForecastScenario {
	sc := models.ForecastScenario{
		Scenario:      scenario,
		RevenueGrowth: growth * 100,
		ExpenseRatio:  ratio * 100,
		Revenue:       make([]models.ForecastPoint, 0, months),
		Expenses:      make([]models.ForecastPoint, 0, months),
		CashFlow:      make([]models.ForecastPoint, 0, months),
	}
	sc.Assumptions = assumptions(scenario, growth, ratio, drag, months)

	prev := monthlyRevenue
	for m := 1; m <= months; m++ {
		rev := monthlyRevenue * math.Pow(1+growth/12, float64(m))
		exp := rev * ratio

		wc := (rev - prev) * drag
		if wc < 0 {
			wc = 0
		}
		cash := rev - exp - wc

		sc.Revenue = append(sc.Revenue, models.ForecastPoint{Month: m, Value: round2(rev)})
		sc.Expenses = append(sc.Expenses, models.ForecastPoint{Month: m, Value: round2(exp)})
		sc.CashFlow = append(sc.CashFlow, models.ForecastPoint{Month: m, Value: round2(cash)})
		prev = rev
	}
	return sc
}

// assumptions renders the scenario parameters deterministically; identical
// parameters always produce the identical string.
func assumptions(scenario models.Scenario, growth, ratio, drag float64, months int) string {
	return fmt.Sprintf(
		"%s case over %d months: revenue growth %.2f%% annually compounded monthly, expenses held at %.1f%% of revenue, working capital absorbing %.1f%% of each month's revenue increase",
		scenario, months, growth*100, ratio*100, drag*100)
}

// enforceOrdering pins the per-month invariant worst <= base <= best for
// revenue and cash flow. Revenue ordering is structural; the cash flow
// ordering can be disturbed by the drag term when margins are negative, so it
// is enforced explicitly after projection.
func enforceOrdering(set *models.ForecastSet) {
	for m := 0; m < set.Months; m++ {
		if set.Best.Revenue[m].Value < set.Base.Revenue[m].Value {
			set.Best.Revenue[m].Value = set.Base.Revenue[m].Value
		}
		if set.Worst.Revenue[m].Value > set.Base.Revenue[m].Value {
			set.Worst.Revenue[m].Value = set.Base.Revenue[m].Value
		}
		if set.Best.CashFlow[m].Value < set.Base.CashFlow[m].Value {
			set.Best.CashFlow[m].Value = set.Base.CashFlow[m].Value
		}
		if set.Worst.CashFlow[m].Value > set.Base.CashFlow[m].Value {
			set.Worst.CashFlow[m].Value = set.Base.CashFlow[m].Value
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
