package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.RecaptchaMinScore != 0.5 {
		t.Errorf("expected default min score 0.5, got %v", cfg.RecaptchaMinScore)
	}
	if cfg.EarlyAccessRateLimit != 3 {
		t.Errorf("expected early access limit 3, got %d", cfg.EarlyAccessRateLimit)
	}
	if cfg.DemoScheduleRateLimit != 5 {
		t.Errorf("expected demo schedule limit 5, got %d", cfg.DemoScheduleRateLimit)
	}
	if cfg.RateLimitWindow != time.Hour {
		t.Errorf("expected 1h window, got %v", cfg.RateLimitWindow)
	}
	if cfg.EmailProvider != "auto" {
		t.Errorf("expected email provider auto, got %s", cfg.EmailProvider)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RECAPTCHA_MIN_SCORE", "0.7")
	t.Setenv("EARLY_ACCESS_RATE_LIMIT", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://eventdesk.io, https://www.eventdesk.io,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.RecaptchaMinScore != 0.7 {
		t.Errorf("expected min score 0.7, got %v", cfg.RecaptchaMinScore)
	}
	if cfg.EarlyAccessRateLimit != 10 {
		t.Errorf("expected limit 10, got %d", cfg.EarlyAccessRateLimit)
	}
	if cfg.RateLimitWindow != 30*time.Minute {
		t.Errorf("expected 30m window, got %v", cfg.RateLimitWindow)
	}
	if !cfg.RedisTLS {
		t.Error("expected RedisTLS true")
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %s", cfg.EmailProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://www.eventdesk.io" {
		t.Errorf("unexpected origin %s", cfg.CORSAllowedOrigins[1])
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("EARLY_ACCESS_RATE_LIMIT", "not-a-number")
	t.Setenv("RECAPTCHA_MIN_SCORE", "high")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	if cfg.EarlyAccessRateLimit != 3 {
		t.Errorf("expected fallback limit 3, got %d", cfg.EarlyAccessRateLimit)
	}
	if cfg.RecaptchaMinScore != 0.5 {
		t.Errorf("expected fallback score 0.5, got %v", cfg.RecaptchaMinScore)
	}
	if cfg.RateLimitWindow != time.Hour {
		t.Errorf("expected fallback 1h window, got %v", cfg.RateLimitWindow)
	}
}
