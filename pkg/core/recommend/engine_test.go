package recommend

import (
	"encoding/json"
	"testing"

	"finhealth/pkg/models"
)

func fp(v float64) *float64 { return &v }

func bench() *models.IndustryBenchmark {
	return &models.IndustryBenchmark{
		Industry:               models.IndustryManufacturing,
		AvgCurrentRatio:        1.5,
		AvgQuickRatio:          1.0,
		AvgGrossMargin:         30,
		AvgNetMargin:           8,
		AvgROA:                 10,
		AvgInventoryTurnover:   6,
		AvgReceivablesDays:     55,
		AvgPayablesDays:        45,
		AvgCashConversionCycle: 70,
		AvgDebtToEquity:        1.2,
		AvgInterestCoverage:    4,
	}
}

// healthyMetrics sits at or better than every benchmark.
func healthyMetrics() *models.FinancialMetrics {
	return &models.FinancialMetrics{
		CompanyID:           "co-1",
		Revenue:             fp(1000),
		CurrentRatio:        fp(1.6),
		QuickRatio:          fp(1.1),
		GrossMargin:         fp(32),
		NetMargin:           fp(9),
		ROA:                 fp(11),
		InventoryTurnover:   fp(7),
		ReceivablesDays:     fp(50),
		PayablesDays:        fp(50),
		CashConversionCycle: fp(60),
		DebtToEquity:        fp(1.0),
		InterestCoverage:    fp(5),
	}
}

func TestHealthyCompanyGetsNoRecommendations(t *testing.T) {
	recs := Generate(DefaultConfig(), healthyMetrics(), nil, bench(), "en")
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations at benchmark, got %d: %+v", len(recs), recs)
	}
}

func TestOrderingIsByteStable(t *testing.T) {
	m := healthyMetrics()
	m.GrossMargin = fp(18)       // 40% below benchmark
	m.NetMargin = fp(5)          // 37.5% below
	m.ReceivablesDays = fp(90)   // 64% above
	m.CurrentRatio = fp(1.1)     // 27% below
	m.DebtToEquity = fp(3.0)     // 150% above
	assessment := &models.CreditAssessment{
		CompanyID:         "co-1",
		CashFlowRisk:      70,
		DebtServicingRisk: 85,
		ConcentrationRisk: 30,
		ComplianceRisk:    65,
	}

	a, _ := json.Marshal(Generate(DefaultConfig(), m, assessment, bench(), "en"))
	b, _ := json.Marshal(Generate(DefaultConfig(), m, assessment, bench(), "en"))
	if string(a) != string(b) {
		t.Fatalf("two runs over identical inputs diverged:\n%s\n%s", a, b)
	}
}

func TestPriorityBands(t *testing.T) {
	cfg := DefaultConfig() // tolerance 0.15

	cases := []struct {
		name   string
		margin float64
		want   models.Priority
	}{
		// Benchmark gross margin is 30.
		{"just past tolerance", 24.5, models.PriorityLow},       // 18.3% below
		{"past 1.5x tolerance", 22.5, models.PriorityMedium},    // 25% below
		{"past 2x tolerance", 20, models.PriorityHigh},          // 33% below
	}
	for _, tc := range cases {
		m := healthyMetrics()
		m.GrossMargin = fp(tc.margin)
		recs := Generate(cfg, m, nil, bench(), "en")
		if len(recs) != 1 {
			t.Fatalf("%s: expected 1 recommendation, got %d", tc.name, len(recs))
		}
		if recs[0].Priority != tc.want {
			t.Errorf("%s: expected priority %s, got %s", tc.name, tc.want, recs[0].Priority)
		}
	}
}

func TestBreachedRiskPromotesRelatedFinding(t *testing.T) {
	m := healthyMetrics()
	m.ReceivablesDays = fp(66) // 20% above benchmark: low on its own

	recs := Generate(DefaultConfig(), m, nil, bench(), "en")
	if len(recs) != 1 || recs[0].Priority != models.PriorityLow {
		t.Fatalf("expected single low finding without assessment, got %+v", recs)
	}

	assessment := &models.CreditAssessment{CompanyID: "co-1", ConcentrationRisk: 65}
	recs = Generate(DefaultConfig(), m, assessment, bench(), "en")
	var found bool
	for _, r := range recs {
		if r.Title == "Accelerate Receivables Collection" {
			found = true
			if r.Priority != models.PriorityHigh {
				t.Errorf("breached concentration risk must promote to high, got %s", r.Priority)
			}
		}
	}
	if !found {
		t.Fatal("receivables finding missing")
	}
}

func TestRiskBreachesEmitTheirOwnActions(t *testing.T) {
	assessment := &models.CreditAssessment{
		CompanyID:         "co-1",
		CashFlowRisk:      70,
		DebtServicingRisk: 50,
		ConcentrationRisk: 20,
		ComplianceRisk:    90,
	}
	recs := Generate(DefaultConfig(), nil, assessment, bench(), "en")
	if len(recs) != 2 {
		t.Fatalf("expected 2 risk actions, got %d: %+v", len(recs), recs)
	}
	byTitle := map[string]models.Recommendation{}
	for _, r := range recs {
		byTitle[r.Title] = r
		if r.Priority != models.PriorityHigh {
			t.Errorf("%s: risk breach actions are always high, got %s", r.Title, r.Priority)
		}
	}
	if r, ok := byTitle["Complete Statutory Registrations"]; !ok || r.Category != models.CategoryCompliance {
		t.Errorf("expected compliance action, got %+v", byTitle)
	}
	if r, ok := byTitle["Secure a Working Capital Facility"]; !ok || r.Category != models.CategoryFinancialProduct {
		t.Errorf("expected financial product action, got %+v", byTitle)
	}
}

func TestImpactEstimates(t *testing.T) {
	m := healthyMetrics()
	m.ReceivablesDays = fp(80) // 25 days over, revenue 1000

	recs := Generate(DefaultConfig(), m, nil, bench(), "en")
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].EstimatedImpact == nil {
		t.Fatal("expected a monetary impact")
	}
	// 1000 * 25/365 * 0.5 = 34.25
	if got := *recs[0].EstimatedImpact; got < 34.24 || got > 34.26 {
		t.Errorf("expected impact ~34.25, got %f", got)
	}

	// Without revenue there is no scale: impact must be nil, not zero.
	m.Revenue = nil
	recs = Generate(DefaultConfig(), m, nil, bench(), "en")
	if len(recs) != 1 || recs[0].EstimatedImpact != nil {
		t.Fatalf("expected nil impact without revenue, got %+v", recs)
	}
}

func TestNilMetricsAreSkippedNotZeroed(t *testing.T) {
	m := healthyMetrics()
	m.GrossMargin = nil // would read as a 100% gap if treated as zero

	recs := Generate(DefaultConfig(), m, nil, bench(), "en")
	for _, r := range recs {
		if r.Title == "Improve Gross Margin" {
			t.Fatal("nil gross margin must not produce a recommendation")
		}
	}
}

func TestSortOrder(t *testing.T) {
	m := healthyMetrics()
	m.GrossMargin = fp(15)     // high priority, large impact
	m.ReceivablesDays = fp(66) // low priority
	m.NetMargin = fp(5)        // high priority, smaller impact than gross margin

	recs := Generate(DefaultConfig(), m, nil, bench(), "en")
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Title != "Improve Gross Margin" || recs[1].Title != "Improve Net Profit Margin" {
		t.Errorf("high-priority items must lead, impact descending: %s / %s", recs[0].Title, recs[1].Title)
	}
	if recs[2].Priority != models.PriorityLow {
		t.Errorf("low priority must sort last, got %s", recs[2].Priority)
	}
}

func TestLanguagePassthrough(t *testing.T) {
	m := healthyMetrics()
	m.GrossMargin = fp(15)

	recs := Generate(DefaultConfig(), m, nil, bench(), "hi")
	if len(recs) == 0 || recs[0].Language != "hi" {
		t.Fatalf("expected language tag passthrough, got %+v", recs)
	}
	recs = Generate(DefaultConfig(), m, nil, bench(), "")
	if len(recs) == 0 || recs[0].Language != "en" {
		t.Fatalf("expected default language, got %+v", recs)
	}
}
