// Seeds the industry benchmark table, including the default fallback row.
// Safe to rerun; rows are upserted.
package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"finhealth/pkg/core/benchmark"
	"finhealth/pkg/core/store"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}

	repo := store.NewBenchmarkRepo()
	rows := benchmark.SeedRows()
	for i := range rows {
		if err := repo.Upsert(ctx, &rows[i]); err != nil {
			log.WithError(err).WithField("industry", rows[i].Industry).Fatal("failed to seed benchmark")
		}
		log.WithField("industry", rows[i].Industry).Info("benchmark seeded")
	}
	log.WithField("count", len(rows)).Info("benchmark seeding complete")
}
