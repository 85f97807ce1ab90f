package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// BenchmarkRepo is the Postgres-backed benchmark store. It satisfies the same
// contract as the in-memory store: Lookup never returns nil for an unmapped
// industry, it falls back to the default row.
type BenchmarkRepo struct{}

// NewBenchmarkRepo creates a new repository instance.
func NewBenchmarkRepo() *BenchmarkRepo {
	return &BenchmarkRepo{}
}

// Upsert writes one benchmark row keyed by industry.
func (r *BenchmarkRepo) Upsert(ctx context.Context, b *models.IndustryBenchmark) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal benchmark: %w", err)
	}

	query := `
		INSERT INTO industry_benchmarks (industry, benchmark_json, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (industry)
		DO UPDATE SET
			benchmark_json = EXCLUDED.benchmark_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, string(b.Industry), jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save benchmark for %s: %w", b.Industry, err)
	}
	return nil
}

// Lookup returns the row for the industry, falling back to the default row.
// A database without even the default row is a seeding bug and errors.
func (r *BenchmarkRepo) Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	b, err := r.row(ctx, industry)
	if err == nil {
		return b, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to load benchmark for %s: %w", industry, err)
	}

	b, err = r.row(ctx, models.DefaultIndustry)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("benchmark table has no default row; run the seeder")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load default benchmark: %w", err)
	}
	return b, nil
}

func (r *BenchmarkRepo) row(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT benchmark_json FROM industry_benchmarks WHERE industry = $1`, string(industry)).Scan(&jsonData)
	if err != nil {
		return nil, err
	}

	var b models.IndustryBenchmark
	if err := json.Unmarshal(jsonData, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal benchmark for %s: %w", industry, err)
	}
	return &b, nil
}
