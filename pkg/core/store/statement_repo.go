package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finhealth/pkg/models"
)

// StatementRepo stores submitted statement periods, one row per
// (company, period end). Resubmitting a period replaces it.
type StatementRepo struct{}

// NewStatementRepo creates a new repository instance.
func NewStatementRepo() *StatementRepo {
	return &StatementRepo{}
}

// Save upserts one statement period.
func (r *StatementRepo) Save(ctx context.Context, p *models.StatementPeriod) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal statement period: %w", err)
	}

	query := `
		INSERT INTO statement_periods (company_id, period_end, period_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, period_end)
		DO UPDATE SET
			period_json = EXCLUDED.period_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, p.CompanyID, p.PeriodEnd, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save statement period for %s: %w", p.CompanyID, err)
	}
	return nil
}

// History returns all statement periods for a company ordered by period end,
// oldest first. An empty history is not an error here; the engines decide
// what incomplete means.
func (r *StatementRepo) History(ctx context.Context, companyID string) ([]*models.StatementPeriod, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT period_json FROM statement_periods WHERE company_id = $1 ORDER BY period_end ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement history for %s: %w", companyID, err)
	}
	defer rows.Close()

	var history []*models.StatementPeriod
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan statement period: %w", err)
		}
		var p models.StatementPeriod
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal statement period: %w", err)
		}
		history = append(history, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement history for %s: %w", companyID, err)
	}
	return history, nil
}

// Source bundles the company and statement repos into the statement-history
// provider the engine service consumes.
type Source struct {
	Companies  *CompanyRepo
	Statements *StatementRepo
}

// NewSource creates the provider over the shared pool.
func NewSource() Source {
	return Source{Companies: NewCompanyRepo(), Statements: NewStatementRepo()}
}

func (s Source) Company(ctx context.Context, companyID string) (*models.Company, error) {
	return s.Companies.Company(ctx, companyID)
}

func (s Source) History(ctx context.Context, companyID string) ([]*models.StatementPeriod, error) {
	return s.Statements.History(ctx, companyID)
}
