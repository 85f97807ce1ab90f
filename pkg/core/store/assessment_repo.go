package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// AssessmentRepo stores credit assessments. Rows are insert-only: every
// assessment keeps its uuid and timestamp, and the history is the audit
// trail.
type AssessmentRepo struct{}

// NewAssessmentRepo creates a new repository instance.
func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{}
}

// Save inserts an assessment. Duplicate ids are a caller bug and surface as
// a constraint violation.
func (r *AssessmentRepo) Save(ctx context.Context, a *models.CreditAssessment) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO credit_assessments (id, company_id, created_at, assessment_json)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, a.ID, a.CompanyID, a.CreatedAt, jsonData); err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", a.ID, err)
	}
	return nil
}

// Latest returns the most recent assessment for a company.
func (r *AssessmentRepo) Latest(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT assessment_json FROM credit_assessments WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1`,
		companyID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no assessment found for company %s", companyID)
		}
		return nil, fmt.Errorf("failed to load assessment for %s: %w", companyID, err)
	}

	var a models.CreditAssessment
	if err := json.Unmarshal(jsonData, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment for %s: %w", companyID, err)
	}
	return &a, nil
}
