package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %s", cfg.AppEnv)
	}
	if cfg.ServiceName != "league-scheduler" {
		t.Fatalf("unexpected service name: %s", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if len(cfg.ScheduleWeekdays) != 1 || cfg.ScheduleWeekdays[0] != time.Saturday {
		t.Fatalf("expected default weekday policy [Saturday], got %v", cfg.ScheduleWeekdays)
	}
	if cfg.RegenMaxWorkers != 4 {
		t.Fatalf("unexpected regen workers: %d", cfg.RegenMaxWorkers)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoad_Weekdays(t *testing.T) {
	t.Setenv("SCHEDULE_ALLOWED_WEEKDAYS", "Saturday, sunday,SATURDAY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if len(cfg.ScheduleWeekdays) != 2 {
		t.Fatalf("expected deduplicated weekdays, got %v", cfg.ScheduleWeekdays)
	}
	if cfg.ScheduleWeekdays[0] != time.Saturday || cfg.ScheduleWeekdays[1] != time.Sunday {
		t.Fatalf("unexpected weekday order: %v", cfg.ScheduleWeekdays)
	}
}

func TestLoad_InvalidWeekday(t *testing.T) {
	t.Setenv("SCHEDULE_ALLOWED_WEEKDAYS", "caturday")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid weekday")
	}
}

func TestLoad_QStashRequiresToken(t *testing.T) {
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://scheduler.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when QSTASH_TOKEN is missing")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPTRACE_DSN is missing")
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug") != logging.LevelDebug {
		t.Fatal("expected debug level")
	}
	if parseLogLevel("WARNING") != logging.LevelWarn {
		t.Fatal("expected warn level")
	}
	if parseLogLevel("nonsense") != logging.LevelInfo {
		t.Fatal("expected info fallback")
	}
}
