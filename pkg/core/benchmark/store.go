// Package benchmark provides the per-industry reference ratio lookup used by
// the scoring, credit and recommendation engines. A lookup never fails to
// find a row: industries without their own entry resolve to the global
// default row.
package benchmark

import (
	"context"

	"finhealth/pkg/models"
)

// Store is the lookup contract consumed by the engines. Implementations must
// return the default row, not nil, when the industry is unmapped.
type Store interface {
	Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error)
}

// MemoryStore serves benchmarks from a fixed in-memory table. The table is
// immutable after construction, so lookups are safe from any goroutine.
type MemoryStore struct {
	rows map[models.Industry]*models.IndustryBenchmark
	def  *models.IndustryBenchmark
}

// NewMemoryStore builds a store from the given rows. The row keyed by
// models.DefaultIndustry becomes the fallback; if none is present, the seed
// default is used.
func NewMemoryStore(rows []models.IndustryBenchmark) *MemoryStore {
	s := &MemoryStore{rows: make(map[models.Industry]*models.IndustryBenchmark)}
	for i := range rows {
		row := rows[i]
		if row.Industry == models.DefaultIndustry {
			s.def = &row
			continue
		}
		s.rows[row.Industry] = &row
	}
	if s.def == nil {
		def := defaultRow()
		s.def = &def
	}
	return s
}

// NewSeededStore returns a store pre-loaded with the stock industry table.
func NewSeededStore() *MemoryStore {
	return NewMemoryStore(SeedRows())
}

// Lookup returns the benchmark row for the industry, or the default row when
// the industry has no entry of its own.
func (s *MemoryStore) Lookup(_ context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	if row, ok := s.rows[industry]; ok {
		return row, nil
	}
	return s.def, nil
}
