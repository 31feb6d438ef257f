package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appreview "github.com/bryanwahyu/creative-qc/internal/application/review"
	"github.com/bryanwahyu/creative-qc/internal/config"
	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
	openaiclient "github.com/bryanwahyu/creative-qc/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/creative-qc/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/creative-qc/internal/infra/db/postgres"
	"github.com/bryanwahyu/creative-qc/internal/infra/export"
	"github.com/bryanwahyu/creative-qc/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/creative-qc/internal/infra/storage"
	"github.com/bryanwahyu/creative-qc/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql default, postgres opsional)
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "", "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewReviewRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewReviewRepository(db)
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	clock := appreview.SystemClock{}

	// init AI client
	aiClient := openaiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model)

	// init service
	svc := appreview.NewService(
		aiClient,
		repo,
		store,
		export.NewRenderer(),
		clock,
		appreview.Config{
			SmilePolicy: domain.SmilePolicy(cfg.Review.SmilePolicy),
			AITimeout:   time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		},
	)

	healthCheckers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  &middleware.PingHealthChecker{Target: store},
	}

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if len(cfg.Auth.Keys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.Keys))
		mux.Use(middleware.RequireValidTenant)
	}
	capacity, refill := cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate
	if capacity <= 0 {
		capacity = 60
	}
	if refill <= 0 {
		refill = 1
	}
	mux.Use(middleware.RateLimitMiddleware(capacity, refill))
	mux.Mount("/", httpserver.NewRouter(svc, healthCheckers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
