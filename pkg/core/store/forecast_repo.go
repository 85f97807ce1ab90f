package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// ForecastRepo stores forecast sets, insert-only like assessments.
type ForecastRepo struct{}

// NewForecastRepo creates a new repository instance.
func NewForecastRepo() *ForecastRepo {
	return &ForecastRepo{}
}

// Save inserts a forecast set with all three scenarios in one JSONB blob.
func (r *ForecastRepo) Save(ctx context.Context, f *models.ForecastSet) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}

	query := `
		INSERT INTO forecast_sets (id, company_id, created_at, forecast_json)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, f.ID, f.CompanyID, f.CreatedAt, jsonData); err != nil {
		return fmt.Errorf("failed to save forecast %s: %w", f.ID, err)
	}
	return nil
}

// Latest returns the most recent forecast set for a company.
func (r *ForecastRepo) Latest(ctx context.Context, companyID string) (*models.ForecastSet, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT forecast_json FROM forecast_sets WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1`,
		companyID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no forecast found for company %s", companyID)
		}
		return nil, fmt.Errorf("failed to load forecast for %s: %w", companyID, err)
	}

	var f models.ForecastSet
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forecast for %s: %w", companyID, err)
	}
	return &f, nil
}
