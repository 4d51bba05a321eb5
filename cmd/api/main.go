// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carterperez-dev/balansai/internal/admin"
	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/blog"
	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/contact"
	"github.com/carterperez-dev/balansai/internal/conversation"
	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/health"
	"github.com/carterperez-dev/balansai/internal/middleware"
	"github.com/carterperez-dev/balansai/internal/pages"
	"github.com/carterperez-dev/balansai/internal/payment"
	"github.com/carterperez-dev/balansai/internal/seo"
	"github.com/carterperez-dev/balansai/internal/server"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/setting"
	"github.com/carterperez-dev/balansai/internal/testimonial"
	"github.com/carterperez-dev/balansai/internal/user"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	drainDelay = 5 * time.Second

	msgTooManyAttempts = "Juda ko'p urinish. Birozdan so'ng qayta urinib ko'ring"
)

func main() {
	configPath := flag.String("config", "", "optional path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized", "endpoint", cfg.Otel.Endpoint)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(logger); err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	sessions := session.NewManager(session.NewRedisStore(redis.Client), cfg.Session, logger)

	settings := setting.NewService(db.DB)

	render, err := web.NewRenderer(settings.Site, logger)
	if err != nil {
		return err
	}

	users := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(users, cfg.Admin)
	payments := payment.NewService(payment.NewRepository(db.DB))
	conversations := conversation.NewService(conversation.NewRepository(db.DB))
	contacts := contact.NewService(contact.NewRepository(db.DB))
	posts := blog.NewService(blog.NewRepository(db.DB), logger)
	testimonials := testimonial.NewService(testimonial.NewRepository(db.DB))

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	proxies, err := cfg.Server.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	formLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.LimitPer(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:   middleware.PerEndpoint(middleware.KeyBehindProxies(proxies)),
		FailOpen:  true,
		OnLimited: middleware.RedirectWithNotice(msgTooManyAttempts),
	})

	srv.Mount(server.Handlers{
		Auth:         auth.NewHandler(authSvc, render),
		Pages:        pages.NewHandler(testimonials, render),
		User:         user.NewHandler(users, authSvc, payments, conversations, render),
		Payment:      payment.NewHandler(payments, render, user.Plans),
		Conversation: conversation.NewHandler(conversations, render),
		Contact:      contact.NewHandler(contacts, render),
		Blog:         blog.NewHandler(posts, render),
		Testimonial:  testimonial.NewHandler(testimonials, render),
		Setting:      setting.NewHandler(settings, render),
		Admin: admin.NewHandler(admin.HandlerConfig{
			Stats:      admin.NewStatsRepository(db.DB),
			Render:     render,
			DBStats:    db.Stats,
			RedisStats: redis.PoolStats,
			DBPing:     db.Ping,
			RedisPing:  redis.Ping,
		}),
		SEO: seo.NewHandler(srv.Router(), posts, cfg.App.BaseURL),
	}, server.RouteConfig{
		Sessions:   sessions,
		Render:     render,
		Tracer:     telemetry.TracerOrNoop(),
		Logger:     logger,
		Production: cfg.IsProduction(),
		FormLimit:  formLimiter.Handler,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
