/**
 * @description
 * This is the main entry point for the payments service. It is responsible
 * for initializing all components of the service, including configuration,
 * database connection, Redis rate limiting, the RabbitMQ producer, the
 * reconciliation scheduler, repositories, the core application services,
 * and the HTTP server. It wires everything together and starts the service.
 */

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/swiftremit/payments-service/internal/api"
	"github.com/swiftremit/payments-service/internal/app"
	"github.com/swiftremit/payments-service/internal/auth"
	"github.com/swiftremit/payments-service/internal/config"
	"github.com/swiftremit/payments-service/internal/store"
	"github.com/swiftremit/payments-service/pkg/rabbitmq"
)

const schema = `
CREATE TABLE IF NOT EXISTS identities (
    id UUID PRIMARY KEY,
    variant TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    id_number TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS accounts (
    id UUID PRIMARY KEY,
    identity_id UUID NOT NULL UNIQUE REFERENCES identities(id),
    account_number TEXT NOT NULL UNIQUE,
    balance BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    sender_id UUID NOT NULL REFERENCES identities(id),
    recipient_name TEXT NOT NULL,
    recipients_bank TEXT NOT NULL,
    recipients_account_number TEXT NOT NULL,
    amount BIGINT NOT NULL,
    swift_code TEXT NOT NULL,
    transaction_type TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_sender ON transactions (sender_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions (status, created_at DESC);
`

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	// If a platform-provided PORT is set, prefer it
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}

	log.Printf("level=info component=bootstrap msg=\"starting payments-service\" port=%s", cfg.ServerPort)

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// Ensure required tables exist (idempotent)
	if _, err := dbpool.Exec(context.Background(), schema); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"schema setup failed\" err=%v", err)
	}

	// Redis backs the rate limits on the credential routes; missing Redis
	// degrades to unlimited rather than blocking startup.
	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"redis url missing; rate limiting disabled\" env=REDIS_URL")
	} else {
		redisOptions, parseErr := redis.ParseURL(cfg.RedisURL)
		if parseErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; rate limiting disabled\" err=%v", parseErr)
		} else {
			redisClient = redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelPing()
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis ping failed; rate limiting disabled\" err=%v", pingErr)
				redisClient.Close()
				redisClient = nil
			} else {
				defer redisClient.Close()
				log.Println("level=info component=bootstrap msg=\"redis connected\"")
			}
		}
	}
	var limiter *api.RedisRateLimiter
	if redisClient != nil {
		limiter = api.NewRedisRateLimiter(redisClient, cfg.RedisRateLimitPrefix)
	}

	// Payment events are advisory; a missing broker never blocks payments.
	var producer rabbitmq.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"rabbitmq url missing; payment events disabled\" env=RABBITMQ_URL")
	} else if p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; payment events disabled\" err=%v", err)
	} else {
		producer = p
		defer p.Close()
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	repository := store.NewPostgresRepository(dbpool)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	identityService := app.NewIdentityService(repository, tokens, cfg.BcryptCost)
	transferService := app.NewTransferService(repository, producer)

	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	jobs := app.NewJobs(repository, slogLogger, cfg.PendingMaxAge)
	scheduler := app.NewScheduler(jobs, slogLogger, cfg.ReconcileSchedule)
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	router := api.NewRouter(
		api.NewIdentityHandler(identityService),
		api.NewPaymentHandler(transferService),
		tokens,
		limiter,
		api.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RegisterLimit:  cfg.RegisterRateLimit,
			LoginLimit:     cfg.LoginRateLimit,
			LimitWindow:    cfg.RateLimitWindow,
		},
	)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		var serveErr error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			log.Printf("level=info component=http msg=\"server listening with TLS\" addr=%s", server.Addr)
			serveErr = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			log.Printf("level=info component=http msg=\"server listening\" addr=%s", server.Addr)
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", serveErr)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
