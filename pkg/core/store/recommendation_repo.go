package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finhealth/pkg/models"
)

// RecommendationRepo stores the current recommendation list per company. A
// regeneration supersedes the whole list in one transaction so a reader never
// observes a mix of old and new items.
type RecommendationRepo struct{}

// NewRecommendationRepo creates a new repository instance.
func NewRecommendationRepo() *RecommendationRepo {
	return &RecommendationRepo{}
}

// Replace deletes the company's stored list and inserts the new one,
// preserving the engine's ordering via the position column.
func (r *RecommendationRepo) Replace(ctx context.Context, companyID string, recs []models.Recommendation) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("failed to clear recommendations for %s: %w", companyID, err)
	}

	now := time.Now()
	for i, rec := range recs {
		jsonData, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal recommendation: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO recommendations (company_id, position, recommendation_json, updated_at) VALUES ($1, $2, $3, $4)`,
			companyID, i, jsonData, now)
		if err != nil {
			return fmt.Errorf("failed to insert recommendation %d for %s: %w", i, companyID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations for %s: %w", companyID, err)
	}
	return nil
}

// List returns the stored list in engine order.
func (r *RecommendationRepo) List(ctx context.Context, companyID string) ([]models.Recommendation, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT recommendation_json FROM recommendations WHERE company_id = $1 ORDER BY position ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations for %s: %w", companyID, err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		var rec models.Recommendation
		if err := json.Unmarshal(jsonData, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recommendations for %s: %w", companyID, err)
	}
	return recs, nil
}
