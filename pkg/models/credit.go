package models

import (
	"time"
)

// CreditRating is the ordinal letter grade derived from the credit score.
type CreditRating string

const (
	RatingAAA CreditRating = "AAA"
	RatingAA  CreditRating = "AA"
	RatingA   CreditRating = "A"
	RatingBBB CreditRating = "BBB"
	RatingBB  CreditRating = "BB"
	RatingB   CreditRating = "B"
	RatingC   CreditRating = "C"
)

// CreditAssessment is the output of one credit risk run. Records are
// immutable: a re-run creates a new record with a fresh ID so the assessment
// history doubles as an audit trail. All scores are 0-100; the four risk
// sub-scores read higher = riskier.
type CreditAssessment struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	CreditScore  float64      `json:"credit_score"`
	CreditRating CreditRating `json:"credit_rating"`

	CashFlowRisk      float64 `json:"cash_flow_risk"`
	DebtServicingRisk float64 `json:"debt_servicing_risk"`
	ConcentrationRisk float64 `json:"concentration_risk"`
	ComplianceRisk    float64 `json:"compliance_risk"`

	ProbabilityOfStress float64 `json:"probability_of_stress"`

	RecommendedLoanAmount   float64 `json:"recommended_loan_amount"`
	RecommendedTenureMonths int     `json:"recommended_tenure_months"`

	// Deterministic descriptions of which sub-scores crossed their configured
	// thresholds, in a fixed order so the list is reproducible from the
	// sub-scores alone.
	RiskFactors []string `json:"risk_factors"`
}
