package credit

import (
	"finhealth/pkg/models"
)

// Rating maps a credit score onto its letter grade using the configured cut
// points. A score exactly at a cut point resolves to the higher band, so the
// mapping is a non-decreasing step function of the score.
func Rating(cfg Config, score float64) models.CreditRating {
	for _, cut := range cfg.RatingCuts {
		if score >= cut.MinScore {
			return cut.Rating
		}
	}
	return cfg.FloorRating
}

// Tenure returns the recommended loan tenure in months for a rating band,
// clamped to the configured bounds.
func Tenure(cfg Config, rating models.CreditRating) int {
	months, ok := cfg.TenureByRating[rating]
	if !ok {
		months = cfg.MinTenureMonths
	}
	if months < cfg.MinTenureMonths {
		months = cfg.MinTenureMonths
	}
	if months > cfg.MaxTenureMonths {
		months = cfg.MaxTenureMonths
	}
	return months
}

// loanMultiplier returns the sizing multiplier for a credit score. Scores
// below every band get a conservative floor multiplier.
func loanMultiplier(cfg Config, score float64) float64 {
	for _, band := range cfg.LoanScoreBands {
		if score >= band.MinScore {
			return band.Multiplier
		}
	}
	return 0.25
}
