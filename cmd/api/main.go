package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"finhealth/pkg/api/health"
	"finhealth/pkg/core/engine"
	"finhealth/pkg/core/store"
	"finhealth/pkg/models"
)

func main() {
	// Load environment variables
	godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfgPath := os.Getenv("ENGINE_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/engine.yaml"
	}
	cfg, err := engine.LoadConfigs(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load engine config")
	}

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}

	source := store.NewSource()
	svc := engine.NewService(cfg, store.NewBenchmarkRepo(), source, engine.Repos{
		Metrics:         store.NewMetricsRepo(),
		Assessments:     store.NewAssessmentRepo(),
		Forecasts:       store.NewForecastRepo(),
		Recommendations: store.NewRecommendationRepo(),
	})

	handler := health.NewHandler(svc, health.Writers{
		SaveCompany: func(ctx context.Context, c *models.Company) error {
			return source.Companies.Save(ctx, c)
		},
		SaveStatement: func(ctx context.Context, p *models.StatementPeriod) error {
			return source.Statements.Save(ctx, p)
		},
	})

	mux := http.NewServeMux()
	handler.Register(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("API server starting")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
