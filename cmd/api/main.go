package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/eventdeskio/eventdesk-leads/cmd/mainconfig"
	"github.com/eventdeskio/eventdesk-leads/internal/api/router"
	"github.com/eventdeskio/eventdesk-leads/internal/captcha"
	appconfig "github.com/eventdeskio/eventdesk-leads/internal/config"
	"github.com/eventdeskio/eventdesk-leads/internal/leads"
	"github.com/eventdeskio/eventdesk-leads/internal/notify"
	"github.com/eventdeskio/eventdesk-leads/internal/observability/metrics"
	"github.com/eventdeskio/eventdesk-leads/internal/ratelimit"
	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

func main() {
	// Best-effort .env for local development; production uses real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting eventdesk-leads API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Repository: Postgres when configured, in-memory otherwise.
	var repo leads.Repository
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		repo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres repository")
	} else {
		repo = leads.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory repository")
	}

	// Rate limiters are disabled without Redis; submissions then pass through.
	var earlyLimiter, demoLimiter *ratelimit.Limiter
	if cfg.RedisAddr != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(redisOptions)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable at startup, limiter will fail open", "error", err)
		}
		earlyLimiter = ratelimit.New(redisClient, "early_access", cfg.EarlyAccessRateLimit, cfg.RateLimitWindow, logger)
		demoLimiter = ratelimit.New(redisClient, "demo_schedule", cfg.DemoScheduleRateLimit, cfg.RateLimitWindow, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	verifier := newVerifier(cfg, logger)
	notifier := newNotifier(ctx, cfg, logger)

	registry := prometheus.NewRegistry()
	leadMetrics := metrics.NewLeadMetrics(registry)

	service := leads.NewService(leads.ServiceConfig{
		Repository:        repo,
		Verifier:          verifier,
		EarlyAccessLimit:  earlyLimiter,
		DemoScheduleLimit: demoLimiter,
		Notifier:          notifier,
		MinScore:          cfg.RecaptchaMinScore,
		Metrics:           leadMetrics,
		Logger:            logger,
	})
	leadsHandler := leads.NewHandler(service, logger)

	r := router.New(router.Config{
		LeadsHandler:   leadsHandler,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// newVerifier returns the captcha verifier or nil when no secret is set.
// leads.Service treats a nil Verifier as verification disabled.
func newVerifier(cfg *appconfig.Config, logger *logging.Logger) captcha.Verifier {
	client := captcha.NewClient(cfg.RecaptchaSecretKey, logger)
	if client == nil {
		logger.Warn("RECAPTCHA_SECRET_KEY not set, captcha verification disabled")
		return nil
	}
	return client
}

// newNotifier picks an email sender per EMAIL_PROVIDER. "auto" prefers
// SendGrid when an API key is present, then SES when AWS credentials are,
// otherwise notifications stay off.
func newNotifier(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) leads.Notifier {
	var sender notify.EmailSender

	provider := cfg.EmailProvider
	if provider == "auto" {
		switch {
		case cfg.SendGridAPIKey != "":
			provider = "sendgrid"
		case cfg.AWSAccessKeyID != "" || cfg.AWSEndpointOverride != "":
			provider = "ses"
		default:
			provider = ""
		}
	}

	switch provider {
	case "sendgrid":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger); sg != nil {
			sender = sg
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config, notifications disabled", "error", err)
			return nil
		}
		if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger); ses != nil {
			sender = ses
		}
	case "stub":
		sender = notify.NewStubEmailSender(logger)
	}

	svc := notify.NewService(sender, cfg.NotifyOperatorEmail, logger)
	if svc == nil {
		logger.Warn("email notifications disabled")
		return nil
	}
	return svc
}
