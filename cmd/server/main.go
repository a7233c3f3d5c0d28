package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/rfdesk/internal/api"
	"github.com/RMahshie/rfdesk/internal/api/handlers"
	"github.com/RMahshie/rfdesk/internal/config"
	"github.com/RMahshie/rfdesk/internal/content"
	"github.com/RMahshie/rfdesk/internal/observability"
	"github.com/RMahshie/rfdesk/internal/processing"
	"github.com/RMahshie/rfdesk/internal/repository/postgres"
	"github.com/RMahshie/rfdesk/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.Log.Level)
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Database not reachable yet, article, consultation and dataset routes will fail until it is")
	}
	cancelPing()

	s3Cfg := storage.S3Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	}
	s3Service, err := storage.NewS3Service(s3Cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create S3 service")
	}
	if cfg.IsDev() || cfg.AWS.S3Endpoint != "" {
		bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storage.EnsureBucket(bucketCtx, s3Cfg); err != nil {
			log.Warn().Err(err).Str("bucket", s3Cfg.Bucket).Msg("Failed to ensure bucket exists")
		}
		cancelBucket()
	}

	library, err := loadLibrary(cfg.Content.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load knowledge base")
	}
	log.Info().Int("pages", library.Len()).Str("dir", cfg.Content.Dir).Msg("Knowledge base loaded")

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}

	datasetRepo := postgres.NewPostgresDatasetRepository(db)
	processingSvc := processing.NewProcessingService(s3Service, datasetRepo, collector, cfg.Content.MaxTouchstoneBytes)
	datasetHandler := handlers.NewDatasetHandler(datasetRepo, s3Service, processingSvc, cfg.Content.MaxTouchstoneBytes)

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.RequestLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(collector.Middleware)

	router.Handle("/metrics", collector.Handler())

	// Create Huma API
	api.UseEnvelopeErrors()
	humaCfg := huma.DefaultConfig("RF Desk API", api.Version)
	humaCfg.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaCfg)

	api.RegisterHealth(humaAPI)
	api.RegisterRoutes(humaAPI, api.Handlers{
		Calculator:   handlers.NewCalculatorHandler(collector),
		Touchstone:   handlers.NewTouchstoneHandler(cfg.Content.MaxTouchstoneBytes, collector),
		Article:      handlers.NewArticleHandler(postgres.NewPostgresArticleRepository(db)),
		Consultation: handlers.NewConsultationHandler(postgres.NewPostgresConsultationRepository(db)),
		Knowledge:    handlers.NewKnowledgeHandler(library),
		Upload:       handlers.NewUploadHandler(s3Service),
		Dataset:      datasetHandler,
	})

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("Starting RF Desk API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Let running dataset jobs record their outcome before the database closes
	datasetHandler.Wait()
	log.Info().Msg("Server exited")
}

// loadLibrary reads the knowledge base from dir. A missing directory yields
// an empty library so the API still starts without content.
func loadLibrary(dir string) (*content.Library, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", dir).Msg("Knowledge base directory not found, serving no pages")
		return content.Empty(), nil
	}
	return content.Load(os.DirFS(dir))
}
