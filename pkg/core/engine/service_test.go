package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/pkg/core/benchmark"
	"finhealth/pkg/models"
)

func fp(v float64) *float64 { return &v }

// fakeSource serves one company from memory. gate, when set, blocks History
// until released so tests can hold a regeneration in flight.
type fakeSource struct {
	company *models.Company
	history []*models.StatementPeriod

	gate         chan struct{}
	historyCalls int64
}

func (f *fakeSource) Company(ctx context.Context, id string) (*models.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, errors.New("unknown company")
	}
	return f.company, nil
}

func (f *fakeSource) History(ctx context.Context, id string) ([]*models.StatementPeriod, error) {
	atomic.AddInt64(&f.historyCalls, 1)
	if f.gate != nil {
		<-f.gate
	}
	return f.history, nil
}

type memMetrics struct {
	mu      sync.Mutex
	metrics []*models.FinancialMetrics
}

func (r *memMetrics) Save(ctx context.Context, m *models.FinancialMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
	return nil
}

type memAssessments struct {
	mu   sync.Mutex
	rows []*models.CreditAssessment
}

func (r *memAssessments) Save(ctx context.Context, a *models.CreditAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, a)
	return nil
}

func (r *memAssessments) Latest(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].CompanyID == companyID {
			return r.rows[i], nil
		}
	}
	return nil, errors.New("no assessment")
}

type memRecs struct {
	mu   sync.Mutex
	rows map[string][]models.Recommendation
}

func (r *memRecs) Replace(ctx context.Context, companyID string, recs []models.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows == nil {
		r.rows = make(map[string][]models.Recommendation)
	}
	r.rows[companyID] = recs
	return nil
}

func period(year int, revenue, cogs, netProfit float64) *models.StatementPeriod {
	return &models.StatementPeriod{
		CompanyID:          "co-1",
		PeriodStart:        time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:          time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		Revenue:            fp(revenue),
		CostOfGoodsSold:    fp(cogs),
		NetProfit:          fp(netProfit),
		CurrentAssets:      fp(300),
		CurrentLiabilities: fp(200),
		Inventory:          fp(100),
		Receivables:        fp(120),
		Payables:           fp(80),
		TotalDebt:          fp(200),
		TotalEquity:        fp(400),
		TotalAssets:        fp(800),
		CashFlow:           fp(revenue * 0.08),
	}
}

func newTestService(src *fakeSource) (*Service, *memMetrics, *memAssessments, *memRecs) {
	metricsRepo := &memMetrics{}
	assessRepo := &memAssessments{}
	recRepo := &memRecs{}
	svc := NewService(DefaultConfigs(), benchmark.NewSeededStore(), src, Repos{
		Metrics:         metricsRepo,
		Assessments:     assessRepo,
		Recommendations: recRepo,
	})
	return svc, metricsRepo, assessRepo, recRepo
}

func testSource() *fakeSource {
	return &fakeSource{
		company: &models.Company{
			ID:                 "co-1",
			Name:               "Test Manufacturing Pvt Ltd",
			Industry:           models.IndustryManufacturing,
			RegistrationNumber: "MFG2020001",
			TaxID:              "29ABCDE1234F1Z5",
		},
		history: []*models.StatementPeriod{
			period(2023, 1000, 650, 70),
			period(2024, 1150, 740, 85),
			period(2025, 1300, 830, 100),
		},
	}
}

func TestComputeMetricsScoresAndPersists(t *testing.T) {
	svc, metricsRepo, _, _ := newTestService(testSource())

	m, err := svc.ComputeMetrics(context.Background(), "co-1")
	require.NoError(t, err)
	require.NotNil(t, m.HealthScore)
	assert.GreaterOrEqual(t, *m.HealthScore, 0.0)
	assert.LessOrEqual(t, *m.HealthScore, 100.0)
	assert.Equal(t, "co-1", m.CompanyID)

	require.Len(t, metricsRepo.metrics, 1)
	assert.Same(t, m, metricsRepo.metrics[0])
}

func TestComputeMetricsNoStatements(t *testing.T) {
	src := testSource()
	src.history = nil
	svc, _, _, _ := newTestService(src)

	_, err := svc.ComputeMetrics(context.Background(), "co-1")
	assert.ErrorIs(t, err, models.ErrIncompleteData)
}

func TestConcurrentRegenerationShareOneRun(t *testing.T) {
	src := testSource()
	src.gate = make(chan struct{})
	svc, _, _, _ := newTestService(src)

	const callers = 8
	results := make([]*models.FinancialMetrics, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := svc.ComputeMetrics(context.Background(), "co-1")
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}

	// Let the goroutines pile onto the in-flight key, then release.
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&src.historyCalls), "waiters must share the winner's run")
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i], "all callers must receive the same result")
	}
}

func TestTryComputeMetricsRejectsWhenBusy(t *testing.T) {
	src := testSource()
	src.gate = make(chan struct{})
	svc, _, _, _ := newTestService(src)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.ComputeMetrics(context.Background(), "co-1")
		assert.NoError(t, err)
	}()

	// Wait for the first call to be inside History.
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&src.historyCalls) == 1
	}, time.Second, 5*time.Millisecond)

	_, err := svc.TryComputeMetrics(context.Background(), "co-1")
	assert.ErrorIs(t, err, models.ErrBusy)

	close(src.gate)
	<-done

	// With nothing in flight the non-blocking call succeeds.
	_, err = svc.TryComputeMetrics(context.Background(), "co-1")
	assert.NoError(t, err)
}

func TestAssessCreditPersistsAuditTrail(t *testing.T) {
	svc, _, assessRepo, _ := newTestService(testSource())

	a, err := svc.AssessCredit(context.Background(), "co-1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.CreditRating)
	assert.InDelta(t, 100, a.CreditScore+a.ProbabilityOfStress, 0.0001)

	// Insert-only: a second run appends rather than overwrites.
	_, err = svc.AssessCredit(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Len(t, assessRepo.rows, 2)

	latest, err := assessRepo.Latest(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Same(t, assessRepo.rows[1], latest)
}

func TestGenerateForecastHorizonPassthrough(t *testing.T) {
	svc, _, _, _ := newTestService(testSource())

	_, err := svc.GenerateForecast(context.Background(), "co-1", 3)
	assert.ErrorIs(t, err, models.ErrInvalidHorizon)

	f, err := svc.GenerateForecast(context.Background(), "co-1", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, f.Months)
	assert.Len(t, f.Base.Revenue, 12)
}

func TestRecommendationsWorkWithoutAssessment(t *testing.T) {
	svc, _, _, recRepo := newTestService(testSource())

	recs, err := svc.GenerateRecommendations(context.Background(), "co-1", "en")
	require.NoError(t, err)
	assert.Equal(t, recs, recRepo.rows["co-1"], "stored list must match the returned list")
	for _, r := range recs {
		assert.Equal(t, "en", r.Language)
	}
}

func TestRecommendationsUseLatestAssessment(t *testing.T) {
	svc, _, _, _ := newTestService(testSource())

	_, err := svc.AssessCredit(context.Background(), "co-1")
	require.NoError(t, err)

	recs, err := svc.GenerateRecommendations(context.Background(), "co-1", "en")
	require.NoError(t, err)

	// Deterministic output for identical inputs.
	again, err := svc.GenerateRecommendations(context.Background(), "co-1", "en")
	require.NoError(t, err)
	assert.Equal(t, recs, again)
}

func TestLoadConfigsMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigs("does/not/exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigs(), cfg)
}
