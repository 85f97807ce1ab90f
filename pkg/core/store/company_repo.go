package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// CompanyRepo stores company master records.
type CompanyRepo struct{}

// NewCompanyRepo creates a new repository instance.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{}
}

// Save upserts a company keyed by its id.
func (r *CompanyRepo) Save(ctx context.Context, c *models.Company) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal company: %w", err)
	}

	query := `
		INSERT INTO companies (id, industry, company_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			industry = EXCLUDED.industry,
			company_json = EXCLUDED.company_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, c.ID, string(c.Industry), jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save company %s: %w", c.ID, err)
	}
	return nil
}

// Company loads one company by id.
func (r *CompanyRepo) Company(ctx context.Context, companyID string) (*models.Company, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT company_json FROM companies WHERE id = $1`, companyID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no company found for id %s", companyID)
		}
		return nil, fmt.Errorf("failed to load company %s: %w", companyID, err)
	}

	var c models.Company
	if err := json.Unmarshal(jsonData, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal company %s: %w", companyID, err)
	}
	return &c, nil
}
