package credit

import (
	"fmt"
)

// RiskFactors renders the human-readable factor list from the four sub-scores
// and the threshold config alone, in a fixed sub-score order. Given the same
// sub-scores it always returns the same list, so an auditor can regenerate it
// from a stored assessment.
func RiskFactors(cfg Config, cashRisk, debtRisk, concRisk, compRisk float64) []string {
	factors := []string{}

	add := func(score float64, severe, elevated string) {
		switch {
		case score >= cfg.SevereRiskThreshold:
			factors = append(factors, fmt.Sprintf("%s (risk score %.0f)", severe, score))
		case score >= cfg.ElevatedRiskThreshold:
			factors = append(factors, fmt.Sprintf("%s (risk score %.0f)", elevated, score))
		}
	}

	add(cashRisk,
		"Severe cash flow volatility threatens ongoing obligations",
		"Elevated cash flow volatility")
	add(debtRisk,
		"Debt servicing capacity is critically strained",
		"Debt servicing burden above comfortable levels")
	add(concRisk,
		"Heavy revenue concentration with slow-paying customers",
		"Receivables or revenue concentration above industry norms")
	add(compRisk,
		"Registration and statement gaps pose serious compliance exposure",
		"Incomplete registration identifiers or statements")

	return factors
}
