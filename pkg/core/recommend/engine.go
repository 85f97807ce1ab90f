// Package recommend scans metrics and credit output for benchmark deviations
// and breached risk thresholds, emitting ranked improvement actions. Output
// ordering is fully deterministic: priority, then estimated impact
// descending, then category, then title, so two runs over identical inputs
// produce byte-identical lists.
package recommend

import (
	"fmt"
	"sort"

	"finhealth/pkg/models"
)

// Config externalizes the deviation policy.
type Config struct {
	// Relative deviation from benchmark that triggers a recommendation.
	Tolerance float64 `yaml:"tolerance"`
	// Fraction of the benchmark gap assumed closable when estimating impact.
	GapClosureFraction float64 `yaml:"gap_closure_fraction"`
	// Risk sub-scores at or above this are treated as breached: they emit
	// their own recommendation and promote related metric findings to high.
	HighRiskThreshold float64 `yaml:"high_risk_threshold"`
	// DefaultLanguage tags output when the caller passes none.
	DefaultLanguage string `yaml:"default_language"`
}

// DefaultConfig returns the stock recommendation policy.
func DefaultConfig() Config {
	return Config{
		Tolerance:          0.15,
		GapClosureFraction: 0.5,
		HighRiskThreshold:  60,
		DefaultLanguage:    "en",
	}
}

// Generate produces the ranked recommendation list for one company. The
// assessment may be nil when no credit run exists yet; risk-driven items are
// then skipped. language selects only the prose locale tag consumed by the
// external text renderer; it never changes the numbers.
func Generate(cfg Config, m *models.FinancialMetrics, assessment *models.CreditAssessment, bench *models.IndustryBenchmark, language string) []models.Recommendation {
	if language == "" {
		language = cfg.DefaultLanguage
	}

	recs := []models.Recommendation{}
	if m != nil {
		for _, d := range watchedMetrics(m, bench) {
			if rec, ok := fromDeviation(cfg, m, assessment, d, language); ok {
				recs = append(recs, rec)
			}
		}
	}
	if assessment != nil {
		recs = append(recs, fromRiskBreaches(cfg, assessment, language)...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		ia, ib := impactValue(a.EstimatedImpact), impactValue(b.EstimatedImpact)
		if ia != ib {
			return ia > ib
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Title < b.Title
	})
	return recs
}

// fromDeviation turns one benchmark deviation into a recommendation when it
// exceeds the tolerance.
func fromDeviation(cfg Config, m *models.FinancialMetrics, assessment *models.CreditAssessment, d deviation, language string) (models.Recommendation, bool) {
	if d.value == nil || d.benchmark <= 0 {
		return models.Recommendation{}, false
	}

	rel := d.relativeDeviation()
	if rel <= cfg.Tolerance {
		return models.Recommendation{}, false
	}

	priority := models.PriorityLow
	switch {
	case rel > 2*cfg.Tolerance || breachedPillar(cfg, assessment, d.pillar):
		priority = models.PriorityHigh
	case rel > 1.5*cfg.Tolerance:
		priority = models.PriorityMedium
	}

	return models.Recommendation{
		CompanyID:       m.CompanyID,
		Category:        d.category,
		Priority:        priority,
		Title:           d.title,
		Description:     d.describe(),
		EstimatedImpact: d.impact(cfg, m.Revenue),
		Effort:          d.effort,
		Language:        language,
	}, true
}

// breachedPillar reports whether the pillar's related risk sub-score crossed
// the high threshold. Profitability has no risk counterpart.
func breachedPillar(cfg Config, assessment *models.CreditAssessment, p pillar) bool {
	if assessment == nil {
		return false
	}
	switch p {
	case pillarLiquidity:
		return assessment.CashFlowRisk >= cfg.HighRiskThreshold
	case pillarEfficiency:
		return assessment.ConcentrationRisk >= cfg.HighRiskThreshold
	case pillarSolvency:
		return assessment.DebtServicingRisk >= cfg.HighRiskThreshold
	default:
		return false
	}
}

// fromRiskBreaches emits one action per breached risk sub-score.
func fromRiskBreaches(cfg Config, a *models.CreditAssessment, language string) []models.Recommendation {
	var recs []models.Recommendation
	add := func(score float64, category models.RecommendationCategory, title, desc string, effort models.Effort) {
		if score < cfg.HighRiskThreshold {
			return
		}
		recs = append(recs, models.Recommendation{
			CompanyID:   a.CompanyID,
			Category:    category,
			Priority:    models.PriorityHigh,
			Title:       title,
			Description: fmt.Sprintf("%s Risk score %.0f/100.", desc, score),
			Effort:      effort,
			Language:    language,
		})
	}

	add(a.CashFlowRisk, models.CategoryFinancialProduct,
		"Secure a Working Capital Facility",
		"Cash flow volatility is high; a committed credit line bridges collection gaps without distressed borrowing.",
		models.EffortMedium)
	add(a.DebtServicingRisk, models.CategoryFinancialProduct,
		"Restructure Debt Obligations",
		"Debt servicing capacity is strained; refinancing to longer tenures or lower rates reduces the burden.",
		models.EffortHigh)
	add(a.ConcentrationRisk, models.CategoryGeneral,
		"Diversify Revenue Sources",
		"Revenue or receivables concentration is elevated; broadening the customer base cushions single-client shocks.",
		models.EffortHigh)
	add(a.ComplianceRisk, models.CategoryCompliance,
		"Complete Statutory Registrations",
		"Registration identifiers or statements are incomplete; close the gaps before they block financing.",
		models.EffortLow)
	return recs
}

func impactValue(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}
