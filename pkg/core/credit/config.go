package credit

import (
	"finhealth/pkg/models"
)

// Config externalizes the engine's numeric policy: blend weights, the rating
// cut-point table, loan sizing and tenure bounds. Policy is data, not
// constants scattered through the engine, so it can be tuned and tested
// independently.
type Config struct {
	// Blend weights for probability_of_stress. Shares of 1.
	CashFlowWeight      float64 `yaml:"cash_flow_weight"`
	DebtServicingWeight float64 `yaml:"debt_servicing_weight"`
	ConcentrationWeight float64 `yaml:"concentration_weight"`
	ComplianceWeight    float64 `yaml:"compliance_weight"`

	// Interest coverage below this flips debt servicing into the high-risk
	// regime; the sub-score is then floored at HighRiskFloor regardless of
	// leverage or anything else.
	CoverageFloor float64 `yaml:"coverage_floor"`
	HighRiskFloor float64 `yaml:"high_risk_floor"`

	// Rating cut points, descending. A score at the cut point resolves to
	// the higher band. Scores below every cut map to FloorRating.
	RatingCuts  []RatingCut         `yaml:"rating_cuts"`
	FloorRating models.CreditRating `yaml:"floor_rating"`

	// Loan sizing.
	LoanRevenueFraction float64     `yaml:"loan_revenue_fraction"`
	LoanScoreBands      []ScoreBand `yaml:"loan_score_bands"`
	// Existing leverage approaching this multiple of the industry average
	// debt/equity shrinks the recommended amount toward zero.
	LeverageCeilingMultiple float64 `yaml:"leverage_ceiling_multiple"`

	// Tenure per rating, clamped to [MinTenureMonths, MaxTenureMonths].
	TenureByRating  map[models.CreditRating]int `yaml:"tenure_by_rating"`
	MinTenureMonths int                         `yaml:"min_tenure_months"`
	MaxTenureMonths int                         `yaml:"max_tenure_months"`

	// Sub-scores at or above these thresholds emit risk factors.
	ElevatedRiskThreshold float64 `yaml:"elevated_risk_threshold"`
	SevereRiskThreshold   float64 `yaml:"severe_risk_threshold"`
}

// RatingCut maps a minimum credit score to a rating band.
type RatingCut struct {
	MinScore float64             `yaml:"min_score"`
	Rating   models.CreditRating `yaml:"rating"`
}

// ScoreBand maps a minimum credit score to a loan sizing multiplier.
type ScoreBand struct {
	MinScore   float64 `yaml:"min_score"`
	Multiplier float64 `yaml:"multiplier"`
}

// DefaultConfig returns the stock credit policy.
func DefaultConfig() Config {
	return Config{
		CashFlowWeight:      0.30,
		DebtServicingWeight: 0.35,
		ConcentrationWeight: 0.20,
		ComplianceWeight:    0.15,

		CoverageFloor: 1.5,
		HighRiskFloor: 70,

		RatingCuts: []RatingCut{
			{MinScore: 90, Rating: models.RatingAAA},
			{MinScore: 80, Rating: models.RatingAA},
			{MinScore: 70, Rating: models.RatingA},
			{MinScore: 60, Rating: models.RatingBBB},
			{MinScore: 50, Rating: models.RatingBB},
			{MinScore: 40, Rating: models.RatingB},
		},
		FloorRating: models.RatingC,

		LoanRevenueFraction: 0.25,
		LoanScoreBands: []ScoreBand{
			{MinScore: 75, Multiplier: 1.5},
			{MinScore: 60, Multiplier: 1.0},
			{MinScore: 45, Multiplier: 0.5},
		},
		LeverageCeilingMultiple: 2.0,

		TenureByRating: map[models.CreditRating]int{
			models.RatingAAA: 60,
			models.RatingAA:  48,
			models.RatingA:   36,
			models.RatingBBB: 24,
			models.RatingBB:  18,
			models.RatingB:   12,
			models.RatingC:   6,
		},
		MinTenureMonths: 6,
		MaxTenureMonths: 60,

		ElevatedRiskThreshold: 60,
		SevereRiskThreshold:   80,
	}
}
