package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// MetricsRepo stores computed metrics, one row per (company, period end).
// Recomputation replaces the row; metrics are a pure function of the period
// so there is nothing to audit.
type MetricsRepo struct{}

// NewMetricsRepo creates a new repository instance.
func NewMetricsRepo() *MetricsRepo {
	return &MetricsRepo{}
}

// Save upserts the metrics row for the period.
func (r *MetricsRepo) Save(ctx context.Context, m *models.FinancialMetrics) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO financial_metrics (company_id, period_end, metrics_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, period_end)
		DO UPDATE SET
			metrics_json = EXCLUDED.metrics_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, m.CompanyID, m.PeriodEnd, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save metrics for %s: %w", m.CompanyID, err)
	}
	return nil
}

// Latest returns the metrics row with the greatest period end. The latest row
// is selected explicitly by ordering, not by insertion time.
func (r *MetricsRepo) Latest(ctx context.Context, companyID string) (*models.FinancialMetrics, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT metrics_json FROM financial_metrics WHERE company_id = $1 ORDER BY period_end DESC LIMIT 1`,
		companyID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no metrics found for company %s", companyID)
		}
		return nil, fmt.Errorf("failed to load metrics for %s: %w", companyID, err)
	}

	var m models.FinancialMetrics
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics for %s: %w", companyID, err)
	}
	return &m, nil
}
