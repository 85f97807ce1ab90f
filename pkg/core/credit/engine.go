// Package credit aggregates ratios, trend history and benchmarks into four
// risk sub-scores, a stress probability, a letter rating and loan sizing.
// Sub-scores read higher = riskier. The engine is a pure function of its
// inputs; a new assessment record is created on every run, never mutated.
package credit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"finhealth/pkg/models"
)

// Assess runs a full credit assessment over a company's metrics history,
// ordered oldest first (the engine re-sorts defensively). The history must
// contain at least one record and a usable revenue figure; anything less is
// ErrIncompleteData, never a silently defaulted score.
func Assess(cfg Config, company *models.Company, history []*models.FinancialMetrics, bench *models.IndustryBenchmark) (*models.CreditAssessment, error) {
	if company == nil {
		return nil, fmt.Errorf("no company profile: %w", models.ErrIncompleteData)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no metrics history for %s: %w", company.ID, models.ErrIncompleteData)
	}

	ordered := make([]*models.FinancialMetrics, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PeriodEnd.Before(ordered[j].PeriodEnd)
	})
	latest := ordered[len(ordered)-1]

	annualRevenue, err := trailingAnnualRevenue(ordered, company)
	if err != nil {
		return nil, err
	}

	cashRisk := cashFlowRisk(latest, ordered)
	debtRisk := debtServicingRisk(cfg, latest, bench)
	concRisk := concentrationRisk(latest, ordered, bench)
	compRisk := complianceRisk(company, latest)

	stress := clamp100(cfg.CashFlowWeight*cashRisk +
		cfg.DebtServicingWeight*debtRisk +
		cfg.ConcentrationWeight*concRisk +
		cfg.ComplianceWeight*compRisk)
	score := 100 - stress
	rating := Rating(cfg, score)

	return &models.CreditAssessment{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		CreatedAt: time.Now().UTC(),

		CreditScore:  score,
		CreditRating: rating,

		CashFlowRisk:      cashRisk,
		DebtServicingRisk: debtRisk,
		ConcentrationRisk: concRisk,
		ComplianceRisk:    compRisk,

		ProbabilityOfStress: stress,

		RecommendedLoanAmount:   loanAmount(cfg, annualRevenue, score, latest, bench),
		RecommendedTenureMonths: Tenure(cfg, rating),

		RiskFactors: RiskFactors(cfg, cashRisk, debtRisk, concRisk, compRisk),
	}, nil
}

// cashFlowRisk inverts cash flow stability and penalizes a negative trailing
// trend and thin liquidity.
func cashFlowRisk(latest *models.FinancialMetrics, history []*models.FinancialMetrics) float64 {
	risk := 50.0
	if latest.CashFlowStability != nil {
		risk = 100 - *latest.CashFlowStability
	}

	if first, last, ok := cashFlowEndpoints(history); ok && last < first {
		risk += 15
	}

	if latest.CurrentRatio != nil {
		switch {
		case *latest.CurrentRatio < 1.0:
			risk += 20
		case *latest.CurrentRatio > 2.0:
			risk -= 20
		}
	}
	return clamp100(risk)
}

// debtServicingRisk bands interest coverage and adds a benchmark-relative
// leverage penalty. Coverage under the configured floor flips the high-risk
// regime: the sub-score cannot fall below HighRiskFloor no matter how modest
// the leverage is.
func debtServicingRisk(cfg Config, latest *models.FinancialMetrics, bench *models.IndustryBenchmark) float64 {
	risk := 50.0
	ic := latest.InterestCoverage
	if ic != nil {
		switch {
		case *ic >= 5:
			risk = 10
		case *ic >= 3:
			risk = 30
		case *ic >= cfg.CoverageFloor:
			risk = 50
		default:
			risk = 80
		}
	}

	if latest.DebtToEquity != nil && bench.AvgDebtToEquity > 0 {
		r := *latest.DebtToEquity / bench.AvgDebtToEquity
		switch {
		case r > 2:
			risk += 20
		case r > 1.5:
			risk += 10
		}
	}

	risk = clamp100(risk)
	if ic != nil && *ic < cfg.CoverageFloor && risk < cfg.HighRiskFloor {
		risk = cfg.HighRiskFloor
	}
	return risk
}

// concentrationRisk proxies customer concentration through receivables-days
// extremity against benchmark and revenue volatility across the history; no
// direct concentration data exists at this layer.
func concentrationRisk(latest *models.FinancialMetrics, history []*models.FinancialMetrics, bench *models.IndustryBenchmark) float64 {
	risk := 40.0

	if latest.ReceivablesDays != nil && bench.AvgReceivablesDays > 0 {
		r := *latest.ReceivablesDays / bench.AvgReceivablesDays
		switch {
		case r >= 2:
			risk += 30
		case r >= 1.5:
			risk += 15
		}
	}

	if cv, ok := revenueVolatility(history); ok {
		switch {
		case cv > 0.30:
			risk += 15
		case cv > 0.15:
			risk += 8
		}
	}
	return clamp100(risk)
}

// complianceRisk scores registration identifier gaps and statement
// completeness. Missing core ratios signal missing mandatory line items in
// the underlying statement.
func complianceRisk(company *models.Company, latest *models.FinancialMetrics) float64 {
	risk := 20.0
	if company.TaxID == "" {
		risk += 30
	}
	if company.RegistrationNumber == "" {
		risk += 20
	}

	for _, ratio := range []*float64{
		latest.CurrentRatio, latest.NetMargin, latest.DebtToEquity, latest.InterestCoverage,
	} {
		if ratio == nil {
			risk += 5
		}
	}
	return clamp100(risk)
}

// loanAmount sizes the recommendation from trailing annual revenue, shrunk by
// the score multiplier and by leverage headroom against the industry ceiling.
func loanAmount(cfg Config, annualRevenue, score float64, latest *models.FinancialMetrics, bench *models.IndustryBenchmark) float64 {
	base := annualRevenue * cfg.LoanRevenueFraction * loanMultiplier(cfg, score)

	headroom := 1.0
	ceiling := bench.AvgDebtToEquity * cfg.LeverageCeilingMultiple
	if latest.DebtToEquity != nil && ceiling > 0 {
		headroom = 1 - *latest.DebtToEquity/ceiling
		if headroom < 0 {
			headroom = 0
		}
	}

	return math.Round(base*headroom*100) / 100
}

// trailingAnnualRevenue annualizes the revenue of the periods ending within
// 365 days of the latest period end. The declared annual revenue on the
// company profile is the fallback when the statements carry no revenue.
func trailingAnnualRevenue(ordered []*models.FinancialMetrics, company *models.Company) (float64, error) {
	latestEnd := ordered[len(ordered)-1].PeriodEnd

	var total, daysCovered float64
	for i := len(ordered) - 1; i >= 0; i-- {
		m := ordered[i]
		if latestEnd.Sub(m.PeriodEnd).Hours() > 365*24 {
			break
		}
		if m.Revenue == nil {
			continue
		}
		total += *m.Revenue
		daysCovered += m.PeriodEnd.Sub(m.PeriodStart).Hours() / 24
	}

	if daysCovered > 0 && total > 0 {
		if daysCovered > 365 {
			daysCovered = 365
		}
		return total * 365 / daysCovered, nil
	}
	if company.AnnualRevenue != nil && *company.AnnualRevenue > 0 {
		return *company.AnnualRevenue, nil
	}
	return 0, fmt.Errorf("no revenue in history or profile for %s: %w", company.ID, models.ErrIncompleteData)
}

func cashFlowEndpoints(history []*models.FinancialMetrics) (first, last float64, ok bool) {
	var seen bool
	for _, m := range history {
		if m.CashFlow == nil {
			continue
		}
		if !seen {
			first = *m.CashFlow
			seen = true
		}
		last = *m.CashFlow
	}
	return first, last, seen
}

func revenueVolatility(history []*models.FinancialMetrics) (cv float64, ok bool) {
	var revs []float64
	for _, m := range history {
		if m.Revenue != nil {
			revs = append(revs, *m.Revenue)
		}
	}
	if len(revs) < 2 {
		return 0, false
	}

	mean := 0.0
	for _, r := range revs {
		mean += r
	}
	mean /= float64(len(revs))
	if mean <= 0 {
		return 0, false
	}

	variance := 0.0
	for _, r := range revs {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(revs))
	return math.Sqrt(variance) / mean, true
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
