// Command tasktrack-server starts the task tracker HTTP server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/chun-mura/tasktrack"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	// Flags, with env fallbacks for the values deployments set
	addr := flag.String("addr", envOr("TASKTRACK_ADDR", ":3000"), "listen address")
	dsn := flag.String("dsn", envOr("TASKTRACK_DSN", "file:tasktrack.db?_pragma=foreign_keys(1)"), "SQLite DSN")
	signingKey := flag.String("signing-key", os.Getenv("TASKTRACK_SIGNING_KEY"), "HS256 signing key (required)")
	tokenTTL := flag.Int("token-ttl", 24, "token validity in hours")
	issuer := flag.String("issuer", "tasktrack", "token issuer")
	seed := flag.Bool("seed", false, "create demo user and fixtures, then continue")
	debug := flag.Bool("debug", false, "verbose request logging")
	flag.Parse()

	logger, _ := zap.NewProduction()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	cfg := &tasktrack.AuthConfig{
		SigningKey:      *signingKey,
		TokenExpiration: *tokenTTL,
		Issuer:          *issuer,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("missing signing key (--signing-key or TASKTRACK_SIGNING_KEY)", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqldb, err := sql.Open(sqliteshim.ShimName, *dsn)
	if err != nil {
		logger.Fatal("sql.Open", zap.Error(err))
	}
	defer sqldb.Close()

	if err := tasktrack.Migrate(ctx, sqldb); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	log := tasktrack.NewZapLogger(logger)

	repo := tasktrack.NewRepositoryManager(db)
	repo.MustValidate()

	if *seed {
		if err := tasktrack.Seed(ctx, repo, log); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
	}

	provider := tasktrack.NewUserProvider(repo.Users()).WithLogger(log)
	auther := tasktrack.NewAuthenticator(provider, repo, cfg).WithLogger(log)

	app := fiber.New(fiber.Config{
		AppName:      "tasktrack",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	tasktrack.RegisterRoutes(app, auther, repo, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- app.Listen(*addr)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
