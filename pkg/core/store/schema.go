package store

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. Result records keep their full
// shape in a JSONB column; the key columns exist for lookups and ordering.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	industry TEXT NOT NULL,
	company_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS statement_periods (
	company_id TEXT NOT NULL,
	period_end DATE NOT NULL,
	period_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (company_id, period_end)
);

CREATE TABLE IF NOT EXISTS financial_metrics (
	company_id TEXT NOT NULL,
	period_end DATE NOT NULL,
	metrics_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (company_id, period_end)
);

CREATE TABLE IF NOT EXISTS credit_assessments (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	assessment_json JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS credit_assessments_company_idx
	ON credit_assessments (company_id, created_at DESC);

CREATE TABLE IF NOT EXISTS forecast_sets (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	forecast_json JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS forecast_sets_company_idx
	ON forecast_sets (company_id, created_at DESC);

CREATE TABLE IF NOT EXISTS recommendations (
	company_id TEXT NOT NULL,
	position INT NOT NULL,
	recommendation_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (company_id, position)
);

CREATE TABLE IF NOT EXISTS industry_benchmarks (
	industry TEXT PRIMARY KEY,
	benchmark_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
