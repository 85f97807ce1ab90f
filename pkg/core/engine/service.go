// Package engine wires the benchmark store, the five calculation engines and
// the result repositories behind one facade. The engines themselves stay pure;
// this package owns I/O, logging and the per-(company, kind) serialization of
// regeneration work.
package engine

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"finhealth/pkg/core/benchmark"
	"finhealth/pkg/core/credit"
	"finhealth/pkg/core/forecast"
	"finhealth/pkg/core/health"
	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/recommend"
	"finhealth/pkg/models"
)

// StatementSource provides company records and statement histories ordered by
// period end. The store package implements it over Postgres; tests use an
// in-memory fake.
type StatementSource interface {
	Company(ctx context.Context, companyID string) (*models.Company, error)
	History(ctx context.Context, companyID string) ([]*models.StatementPeriod, error)
}

// MetricsRepo persists computed metrics, one row per statement period.
type MetricsRepo interface {
	Save(ctx context.Context, m *models.FinancialMetrics) error
}

// AssessmentRepo persists credit assessments. Assessments are insert-only;
// history is the audit trail.
type AssessmentRepo interface {
	Save(ctx context.Context, a *models.CreditAssessment) error
	Latest(ctx context.Context, companyID string) (*models.CreditAssessment, error)
}

// ForecastRepo persists forecast sets.
type ForecastRepo interface {
	Save(ctx context.Context, f *models.ForecastSet) error
}

// RecommendationRepo replaces a company's recommendation list wholesale.
type RecommendationRepo interface {
	Replace(ctx context.Context, companyID string, recs []models.Recommendation) error
}

// Repos groups the optional persistence sinks. Any nil repo is skipped, so
// the service also runs fully in memory.
type Repos struct {
	Metrics         MetricsRepo
	Assessments     AssessmentRepo
	Forecasts       ForecastRepo
	Recommendations RecommendationRepo
}

// Service is the orchestration facade over the calculation engines.
type Service struct {
	cfg   Configs
	bench benchmark.Store
	data  StatementSource
	repos Repos

	group    singleflight.Group
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService wires a service. bench and data are mandatory.
func NewService(cfg Configs, bench benchmark.Store, data StatementSource, repos Repos) *Service {
	return &Service{
		cfg:      cfg,
		bench:    bench,
		data:     data,
		repos:    repos,
		inflight: make(map[string]struct{}),
	}
}

// regenerate serializes work under a (company, kind) key. Concurrent callers
// for the same key share the winner's result; with wait=false a loser is
// rejected with ErrBusy instead of waiting.
func (s *Service) regenerate(key string, wait bool, fn func() (interface{}, error)) (interface{}, error) {
	if !wait {
		s.mu.Lock()
		if _, busy := s.inflight[key]; busy {
			s.mu.Unlock()
			return nil, fmt.Errorf("regeneration of %s already in flight: %w", key, models.ErrBusy)
		}
		s.mu.Unlock()
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		s.mu.Lock()
		s.inflight[key] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.inflight, key)
			s.mu.Unlock()
		}()
		return fn()
	})
	return v, err
}

// ComputeMetrics computes and scores the latest period's metrics for a
// company, persisting the result. Concurrent calls for the same company share
// one computation.
func (s *Service) ComputeMetrics(ctx context.Context, companyID string) (*models.FinancialMetrics, error) {
	return s.computeMetrics(ctx, companyID, true)
}

// TryComputeMetrics is the non-blocking variant: it returns ErrBusy when a
// metrics regeneration for the company is already in flight.
func (s *Service) TryComputeMetrics(ctx context.Context, companyID string) (*models.FinancialMetrics, error) {
	return s.computeMetrics(ctx, companyID, false)
}

func (s *Service) computeMetrics(ctx context.Context, companyID string, wait bool) (*models.FinancialMetrics, error) {
	v, err := s.regenerate("metrics/"+companyID, wait, func() (interface{}, error) {
		history, err := s.data.History(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load statements for %s: %w", companyID, err)
		}
		if len(history) == 0 {
			return nil, fmt.Errorf("company %s has no statements: %w", companyID, models.ErrIncompleteData)
		}

		latest := history[len(history)-1]
		var prior *models.StatementPeriod
		if len(history) > 1 {
			prior = history[len(history)-2]
		}

		m, err := metrics.Compute(latest, prior)
		if err != nil {
			return nil, err
		}

		bench, err := s.benchmarkFor(ctx, companyID)
		if err != nil {
			return nil, err
		}
		health.Apply(s.cfg.Health, m, bench)

		if s.repos.Metrics != nil {
			if err := s.repos.Metrics.Save(ctx, m); err != nil {
				return nil, fmt.Errorf("failed to persist metrics for %s: %w", companyID, err)
			}
		}
		log.WithFields(log.Fields{
			"company":      companyID,
			"period_end":   m.PeriodEnd.Format("2006-01-02"),
			"health_score": deref(m.HealthScore),
		}).Info("metrics computed")
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.FinancialMetrics), nil
}

// AssessCredit runs a credit assessment over the company's full metrics
// history and persists it.
func (s *Service) AssessCredit(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	return s.assessCredit(ctx, companyID, true)
}

// TryAssessCredit rejects with ErrBusy when an assessment for the company is
// already in flight.
func (s *Service) TryAssessCredit(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	return s.assessCredit(ctx, companyID, false)
}

func (s *Service) assessCredit(ctx context.Context, companyID string, wait bool) (*models.CreditAssessment, error) {
	v, err := s.regenerate("assessment/"+companyID, wait, func() (interface{}, error) {
		company, err := s.data.Company(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
		}

		metricsHistory, err := s.metricsHistory(ctx, companyID)
		if err != nil {
			return nil, err
		}
		bench, err := s.bench.Lookup(ctx, company.Industry)
		if err != nil {
			return nil, fmt.Errorf("benchmark lookup failed: %w", err)
		}

		a, err := credit.Assess(s.cfg.Credit, company, metricsHistory, bench)
		if err != nil {
			return nil, err
		}
		if s.repos.Assessments != nil {
			if err := s.repos.Assessments.Save(ctx, a); err != nil {
				return nil, fmt.Errorf("failed to persist assessment for %s: %w", companyID, err)
			}
		}
		log.WithFields(log.Fields{
			"company": companyID,
			"score":   a.CreditScore,
			"rating":  a.CreditRating,
		}).Info("credit assessed")
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CreditAssessment), nil
}

// GenerateForecast builds the three-scenario forecast over the given horizon
// and persists it.
func (s *Service) GenerateForecast(ctx context.Context, companyID string, months int) (*models.ForecastSet, error) {
	return s.generateForecast(ctx, companyID, months, true)
}

// TryGenerateForecast rejects with ErrBusy when a forecast for the company is
// already in flight.
func (s *Service) TryGenerateForecast(ctx context.Context, companyID string, months int) (*models.ForecastSet, error) {
	return s.generateForecast(ctx, companyID, months, false)
}

func (s *Service) generateForecast(ctx context.Context, companyID string, months int, wait bool) (*models.ForecastSet, error) {
	v, err := s.regenerate(fmt.Sprintf("forecast/%s", companyID), wait, func() (interface{}, error) {
		history, err := s.data.History(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load statements for %s: %w", companyID, err)
		}
		bench, err := s.benchmarkFor(ctx, companyID)
		if err != nil {
			return nil, err
		}

		f, err := forecast.Generate(s.cfg.Forecast, history, bench, months)
		if err != nil {
			return nil, err
		}
		if s.repos.Forecasts != nil {
			if err := s.repos.Forecasts.Save(ctx, f); err != nil {
				return nil, fmt.Errorf("failed to persist forecast for %s: %w", companyID, err)
			}
		}
		log.WithFields(log.Fields{
			"company": companyID,
			"months":  months,
		}).Info("forecast generated")
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ForecastSet), nil
}

// GenerateRecommendations scans the latest metrics and assessment for the
// company and replaces its stored recommendation list.
func (s *Service) GenerateRecommendations(ctx context.Context, companyID, language string) ([]models.Recommendation, error) {
	return s.generateRecommendations(ctx, companyID, language, true)
}

// TryGenerateRecommendations rejects with ErrBusy when a recommendation run
// for the company is already in flight.
func (s *Service) TryGenerateRecommendations(ctx context.Context, companyID, language string) ([]models.Recommendation, error) {
	return s.generateRecommendations(ctx, companyID, language, false)
}

func (s *Service) generateRecommendations(ctx context.Context, companyID, language string, wait bool) ([]models.Recommendation, error) {
	v, err := s.regenerate("recommendations/"+companyID, wait, func() (interface{}, error) {
		m, err := s.computeMetrics(ctx, companyID, true)
		if err != nil {
			return nil, err
		}

		// A missing assessment is not fatal: metric-deviation findings still
		// apply, only the risk-driven items are skipped.
		var assessment *models.CreditAssessment
		if s.repos.Assessments != nil {
			assessment, err = s.repos.Assessments.Latest(ctx, companyID)
			if err != nil {
				log.WithField("company", companyID).WithError(err).Warn("no credit assessment available")
				assessment = nil
			}
		}

		bench, err := s.benchmarkFor(ctx, companyID)
		if err != nil {
			return nil, err
		}

		recs := recommend.Generate(s.cfg.Recommend, m, assessment, bench, language)
		if s.repos.Recommendations != nil {
			if err := s.repos.Recommendations.Replace(ctx, companyID, recs); err != nil {
				return nil, fmt.Errorf("failed to persist recommendations for %s: %w", companyID, err)
			}
		}
		log.WithFields(log.Fields{
			"company": companyID,
			"count":   len(recs),
		}).Info("recommendations generated")
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Recommendation), nil
}

// metricsHistory recomputes metrics per statement period, oldest first, each
// with its immediate predecessor for average-based ratios. Periods too sparse
// to compute are skipped; credit.Assess decides whether what remains is
// enough.
func (s *Service) metricsHistory(ctx context.Context, companyID string) ([]*models.FinancialMetrics, error) {
	history, err := s.data.History(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements for %s: %w", companyID, err)
	}

	out := make([]*models.FinancialMetrics, 0, len(history))
	for i, p := range history {
		var prior *models.StatementPeriod
		if i > 0 {
			prior = history[i-1]
		}
		m, err := metrics.Compute(p, prior)
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) benchmarkFor(ctx context.Context, companyID string) (*models.IndustryBenchmark, error) {
	company, err := s.data.Company(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
	}
	bench, err := s.bench.Lookup(ctx, company.Industry)
	if err != nil {
		return nil, fmt.Errorf("benchmark lookup failed: %w", err)
	}
	return bench, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
