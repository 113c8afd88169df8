package main

// @title           Ward Hub Core API
// @version         1.0
// @description     Ward hub backend. Global search across procedures, training media and personnel, and per-person schedule previews.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/custodia-labs/wardhub-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/wardhub-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/wardhub-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/wardhub-core/internal/adapters/driving/http"
	"github.com/custodia-labs/wardhub-core/internal/config"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
	"github.com/custodia-labs/wardhub-core/internal/core/services"
	"github.com/custodia-labs/wardhub-core/internal/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wardhub-core: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("wardhub-core starting", zap.String("version", version), zap.String("env", cfg.Env))

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ===== PostgreSQL =====
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime(),
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime(),
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	log.Info("postgres connected and schema initialized")

	// ===== Sessions: Redis when configured, PostgreSQL otherwise =====
	var sessionStore driven.SessionStore = postgres.NewSessionStore(db)
	var redisPinger http.Pinger
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		redisSessions := redisadapter.NewSessionStore(client)
		if err := redisSessions.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		sessionStore = redisSessions
		redisPinger = redisSessions
		log.Info("redis session store enabled")
	}

	// ===== Stores =====
	userStore := postgres.NewUserStore(db)
	procedureStore := postgres.NewProcedureStore(db)
	mediaStore := postgres.NewMediaStore(db)
	personStore := postgres.NewPersonStore(db)
	rosterStore := postgres.NewRosterStore(db)

	authAdapter := auth.NewAdapter(cfg.Auth.JWTSecret)

	if cfg.Auth.AdminEmail != "" {
		created, err := services.EnsureAdmin(ctx, userStore, authAdapter, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info("admin account created", zap.String("email", cfg.Auth.AdminEmail))
		}
	}

	// ===== Services =====
	resolver := services.NewVisibilityResolver()
	searchCfg := services.DefaultGlobalSearchConfig()
	searchCfg.Timeout = cfg.Search.Timeout()

	svc := http.Services{
		Auth:        services.NewAuthService(userStore, sessionStore, authAdapter, cfg.Auth.TokenTTL()),
		Preferences: services.NewPreferenceService(userStore),
		Search: services.NewGlobalSearchService(
			services.NewCandidateSources(procedureStore, mediaStore, personStore, resolver),
			resolver,
			searchCfg,
			log,
		),
		Preview: services.NewSchedulePreviewService(personStore, rosterStore, services.SchedulePreviewConfig{
			Timeout:           cfg.Preview.Timeout(),
			PlaceholderLabels: cfg.Preview.PlaceholderLabels,
		}, log),
	}

	// ===== HTTP =====
	serverCfg := http.DefaultConfig()
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.Version = version
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout()
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout()

	server := http.NewServer(serverCfg, svc, db, redisPinger, log)
	return server.Start(ctx, cfg.HTTP.ShutdownTimeout())
}
