package credit

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"finhealth/pkg/models"
)

func fp(v float64) *float64 { return &v }

func bench() *models.IndustryBenchmark {
	return &models.IndustryBenchmark{
		Industry:            models.IndustryManufacturing,
		AvgDebtToEquity:     1.2,
		AvgReceivablesDays:  55,
		AvgInterestCoverage: 4,
	}
}

func company() *models.Company {
	return &models.Company{
		ID:                 "co-1",
		Industry:           models.IndustryManufacturing,
		RegistrationNumber: "MFG2020001",
		TaxID:              "29ABCDE1234F1Z5",
	}
}

func metricsAt(end time.Time) *models.FinancialMetrics {
	return &models.FinancialMetrics{
		CompanyID:         "co-1",
		PeriodStart:       end.AddDate(-1, 0, 0),
		PeriodEnd:         end,
		Revenue:           fp(1000),
		CashFlow:          fp(90),
		CurrentRatio:      fp(1.5),
		NetMargin:         fp(10),
		ReceivablesDays:   fp(44),
		DebtToEquity:      fp(0.5),
		InterestCoverage:  fp(6),
		CashFlowStability: fp(70),
	}
}

func TestAssessScoresStayInRange(t *testing.T) {
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	a, err := Assess(DefaultConfig(), company(), []*models.FinancialMetrics{metricsAt(end)}, bench())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, v := range map[string]float64{
		"credit_score":          a.CreditScore,
		"probability_of_stress": a.ProbabilityOfStress,
		"cash_flow_risk":        a.CashFlowRisk,
		"debt_servicing_risk":   a.DebtServicingRisk,
		"concentration_risk":    a.ConcentrationRisk,
		"compliance_risk":       a.ComplianceRisk,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %f out of [0,100]", name, v)
		}
	}
	if math.Abs(a.CreditScore+a.ProbabilityOfStress-100) > 0.0001 {
		t.Errorf("credit score must be 100 - PoS, got %f + %f", a.CreditScore, a.ProbabilityOfStress)
	}
	if a.RecommendedTenureMonths <= 0 {
		t.Error("tenure must be positive")
	}
	if a.RecommendedLoanAmount < 0 {
		t.Error("loan amount must be non-negative")
	}
	if a.ID == "" {
		t.Error("assessment needs an identity for the audit trail")
	}
}

func TestCoverageBelowFloorFlipsHighRiskRegime(t *testing.T) {
	cfg := DefaultConfig()
	// Pristine balance sheet except coverage just under the floor: the
	// regime floor must win over the low-leverage discount.
	m := metricsAt(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	m.InterestCoverage = fp(1.4)
	m.DebtToEquity = fp(0.1)

	risk := debtServicingRisk(cfg, m, bench())
	if risk < cfg.HighRiskFloor {
		t.Errorf("coverage %.1f must floor debt risk at %.0f, got %f", 1.4, cfg.HighRiskFloor, risk)
	}

	// At the floor exactly, the regime does not trip.
	m.InterestCoverage = fp(1.5)
	if risk := debtServicingRisk(cfg, m, bench()); risk >= cfg.HighRiskFloor {
		t.Errorf("coverage at the floor must not trip the regime, got %f", risk)
	}
}

func TestHighLeverageAndUnitCoverage(t *testing.T) {
	// debt_to_equity far above benchmark plus coverage 1.0: debt risk must
	// reach the high regime and the rating can be no better than BB.
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	m := metricsAt(end)
	m.InterestCoverage = fp(1.0)
	m.DebtToEquity = fp(4.0)
	m.CashFlowStability = fp(40)

	a, err := Assess(DefaultConfig(), company(), []*models.FinancialMetrics{m}, bench())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.DebtServicingRisk < 70 {
		t.Errorf("expected debt servicing risk >= 70, got %f", a.DebtServicingRisk)
	}
	for _, better := range []models.CreditRating{models.RatingAAA, models.RatingAA, models.RatingA, models.RatingBBB} {
		if a.CreditRating == better {
			t.Errorf("rating %s is better than BB despite distress", a.CreditRating)
		}
	}
}

func TestRatingStepFunction(t *testing.T) {
	cfg := DefaultConfig()
	cases := map[float64]models.CreditRating{
		95: models.RatingAAA,
		91: models.RatingAAA,
		90: models.RatingAAA, // boundary resolves to the higher band
		89: models.RatingAA,
		80: models.RatingAA,
		70: models.RatingA,
		60: models.RatingBBB,
		50: models.RatingBB,
		40: models.RatingB,
		39: models.RatingC,
		0:  models.RatingC,
	}
	for score, want := range cases {
		if got := Rating(cfg, score); got != want {
			t.Errorf("Rating(%.0f): expected %s, got %s", score, want, got)
		}
	}

	// Non-decreasing over a sweep.
	ranks := map[models.CreditRating]int{
		models.RatingC: 0, models.RatingB: 1, models.RatingBB: 2, models.RatingBBB: 3,
		models.RatingA: 4, models.RatingAA: 5, models.RatingAAA: 6,
	}
	prev := -1
	for score := 0.0; score <= 100; score++ {
		r := ranks[Rating(cfg, score)]
		if r < prev {
			t.Fatalf("rating decreased at score %.0f", score)
		}
		prev = r
	}
}

func TestRiskFactorsReproducibleFromSubScores(t *testing.T) {
	cfg := DefaultConfig()
	a := RiskFactors(cfg, 65, 85, 30, 10)
	b := RiskFactors(cfg, 65, 85, 30, 10)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("factor list not reproducible: %v vs %v", a, b)
	}
	if len(a) != 2 {
		t.Fatalf("expected 2 factors (cash elevated, debt severe), got %v", a)
	}
	// Fixed order: cash flow before debt servicing.
	if a[0] != "Elevated cash flow volatility (risk score 65)" {
		t.Errorf("unexpected first factor: %q", a[0])
	}
	if a[1] != "Debt servicing capacity is critically strained (risk score 85)" {
		t.Errorf("unexpected second factor: %q", a[1])
	}

	if got := RiskFactors(cfg, 10, 10, 10, 10); len(got) != 0 {
		t.Errorf("no thresholds crossed must yield empty list, got %v", got)
	}
}

func TestLoanSizing(t *testing.T) {
	cfg := DefaultConfig()
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	m := metricsAt(end)

	// Score band >= 75 -> 1.5x; headroom = 1 - 0.5/(1.2*2) = 0.7917
	amount := loanAmount(cfg, 1000, 80, m, bench())
	want := math.Round(1000*0.25*1.5*(1-0.5/2.4)*100) / 100
	if math.Abs(amount-want) > 0.01 {
		t.Errorf("expected loan %f, got %f", want, amount)
	}

	// Leverage at or past the ceiling removes all headroom.
	m.DebtToEquity = fp(2.4)
	if got := loanAmount(cfg, 1000, 80, m, bench()); got != 0 {
		t.Errorf("expected zero loan at leverage ceiling, got %f", got)
	}

	// Unknown leverage leaves headroom at 1.
	m.DebtToEquity = nil
	if got := loanAmount(cfg, 1000, 50, m, bench()); got != 1000*0.25*0.5 {
		t.Errorf("expected %f, got %f", 1000*0.25*0.5, got)
	}
}

func TestTrailingAnnualRevenueAnnualizes(t *testing.T) {
	// Two half-year periods of 500 each cover ~364 days -> annualized ~1000.
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	first := &models.FinancialMetrics{
		PeriodStart: end.AddDate(0, -12, 0), PeriodEnd: end.AddDate(0, -6, 0), Revenue: fp(500),
	}
	second := &models.FinancialMetrics{
		PeriodStart: end.AddDate(0, -6, 0), PeriodEnd: end, Revenue: fp(500),
	}

	rev, err := trailingAnnualRevenue([]*models.FinancialMetrics{first, second}, company())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(rev-1000) > 15 {
		t.Errorf("expected ~1000 annualized, got %f", rev)
	}
}

func TestAssessIncompleteData(t *testing.T) {
	cfg := DefaultConfig()

	_, err := Assess(cfg, company(), nil, bench())
	if !errors.Is(err, models.ErrIncompleteData) {
		t.Fatalf("empty history: expected ErrIncompleteData, got %v", err)
	}

	// History without revenue and no declared fallback.
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	m := metricsAt(end)
	m.Revenue = nil
	_, err = Assess(cfg, company(), []*models.FinancialMetrics{m}, bench())
	if !errors.Is(err, models.ErrIncompleteData) {
		t.Fatalf("no revenue: expected ErrIncompleteData, got %v", err)
	}

	// Declared annual revenue rescues the assessment.
	co := company()
	co.AnnualRevenue = fp(2000000)
	if _, err := Assess(cfg, co, []*models.FinancialMetrics{m}, bench()); err != nil {
		t.Fatalf("declared revenue fallback failed: %v", err)
	}
}

func TestComplianceRiskIdentifierGaps(t *testing.T) {
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	m := metricsAt(end)

	complete := complianceRisk(company(), m)
	co := company()
	co.TaxID = ""
	co.RegistrationNumber = ""
	bare := complianceRisk(co, m)

	if bare <= complete {
		t.Errorf("missing identifiers must raise compliance risk: %f <= %f", bare, complete)
	}
	if bare != 70 {
		t.Errorf("expected 20+30+20=70, got %f", bare)
	}

	// Missing core ratios raise the score further.
	m.InterestCoverage = nil
	m.DebtToEquity = nil
	if got := complianceRisk(co, m); got != 80 {
		t.Errorf("expected 70+5+5=80, got %f", got)
	}
}
