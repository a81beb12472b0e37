package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	api "github.com/developer-overheid-nl/don-workflows-api/pkg/api_client"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/handler"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/jobs"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/metrics"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/services"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return def
}

func main() {
	_ = godotenv.Load()

	version := envOr("API_VERSION", "1.0.0")
	port := envOr("PORT", "1338")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	// Wire services and controller
	analyzer := workflow.New()
	workflowSvc := services.NewWorkflowService(analyzer, m)
	lintSvc := services.NewLintService(analyzer)
	collectionSvc := services.NewCollectionService(analyzer)
	store := services.NewCatalogStore()
	catalogSvc := services.NewCatalogServiceFromEnv(store, workflowSvc, m)
	controller := handler.NewWorkflowController(workflowSvc, lintSvc, collectionSvc, store)

	limiter := rate.NewLimiter(rate.Limit(envFloat("RATE_LIMIT_RPS", 10)), int(envFloat("RATE_LIMIT_BURST", 20)))
	router := api.NewRouter(version, controller, reg, limiter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := jobs.ScheduleCatalogFromEnv(ctx, catalogSvc); err != nil {
		log.Printf("[catalog] kon harvest niet plannen: %v", err)
	}

	// Start server
	log.Printf("Server luistert op :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
