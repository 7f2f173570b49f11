package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"examapi/docs"
	"examapi/internal/config"
	"examapi/internal/database"
	"examapi/internal/database/migration"
	handlers "examapi/internal/http/handler"
	"examapi/internal/http/middleware"
	"examapi/internal/otel"
	"examapi/internal/repository/postgres"
	"examapi/internal/service"
	"examapi/internal/storage"
)

// @title Exam Administration API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC
	ctx := context.Background()

	// Tracing is optional; a failed exporter degrades to a noop provider.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories
	candidateRepo := postgres.NewCandidatePostgres(db)
	subjectRepo := postgres.NewSubjectPostgres(db)
	scoreRepo := postgres.NewScorePostgres(db)
	examinerRepo := postgres.NewExaminerPostgres(db)
	certificateRepo := postgres.NewCertificatePostgres(db)

	// Services. Score writes invalidate the analysis cache for the subject.
	analysisSvc := service.NewScoresAnalysisService(scoreRepo, subjectRepo)
	svcs := handlers.Services{
		Candidates:   service.NewCandidateService(objStore, candidateRepo),
		Subjects:     service.NewSubjectService(subjectRepo),
		Scores:       service.NewScoreService(objStore, scoreRepo, subjectRepo, candidateRepo, analysisSvc),
		Analysis:     analysisSvc,
		Allocations:  service.NewAllocationService(examinerRepo, subjectRepo),
		Certificates: service.NewCertificateService(objStore, certificateRepo, candidateRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))

	// Prometheus request counting plus the /metrics scrape endpoint
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
