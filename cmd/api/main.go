package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pimapi/internal/auth"
	"pimapi/internal/config"
	"pimapi/internal/database"
	"pimapi/internal/database/migration"
	handlers "pimapi/internal/http/handler"
	"pimapi/internal/http/middleware"
	"pimapi/internal/mail"
	"pimapi/internal/otel"
	"pimapi/internal/repository/postgres"
	"pimapi/internal/service"
	"pimapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	mailer, err := mail.NewSMTP(cfg.SMTP)
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}

	tokens := auth.NewJWTManager(cfg.JWT)
	hasher := auth.NewPasswordHasher()

	attrRepo := postgres.NewAttributeGroupPostgres(db)
	familyRepo := postgres.NewFamilyPostgres(db)
	productRepo := postgres.NewProductPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	svcs := handlers.Services{
		AttributeGroups: service.NewAttributeGroupService(attrRepo),
		Families:        service.NewFamilyService(familyRepo, attrRepo),
		Products:        service.NewProductService(productRepo, objStore),
		Users:           service.NewUserService(userRepo, objStore, mailer, tokens, hasher, cfg.BaseURL),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, tokens, svcs)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
