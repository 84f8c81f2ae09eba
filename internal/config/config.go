package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string

	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled bool
	CacheTTL     time.Duration

	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	// ScheduleWeekdays is the weekday policy for scheduling days.
	ScheduleWeekdays []time.Weekday
	RegenMaxWorkers  int

	InternalJobToken string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	QStashEnabled               bool
	QStashBaseURL               string
	QStashToken                 string
	QStashTargetBaseURL         string
	QStashRetries               int
	QStashCircuitEnabled        bool
	QStashCircuitFailureCount   int
	QStashCircuitOpenTimeout    time.Duration
	QStashCircuitHalfOpenMaxReq int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "league-scheduler"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
	}

	cfg.DBDisablePreparedBinary = envBool("DB_DISABLE_PREPARED_BINARY_RESULT")

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout

	weekdays, err := parseWeekdays(getEnv("SCHEDULE_ALLOWED_WEEKDAYS", "saturday"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_ALLOWED_WEEKDAYS: %w", err)
	}
	cfg.ScheduleWeekdays = weekdays

	regenMaxWorkers, err := getEnvAsInt("REGEN_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REGEN_MAX_WORKERS: %w", err)
	}
	if regenMaxWorkers < 1 {
		return Config{}, fmt.Errorf("REGEN_MAX_WORKERS must be >= 1")
	}
	cfg.RegenMaxWorkers = regenMaxWorkers

	cfg.InternalJobToken = strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = getEnv("PPROF_ADDR", "localhost:6060")

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.UptraceLogsEnabled = uptraceLogsEnabled

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	cfg.BetterStackEnabled = betterStackEnabled
	cfg.BetterStackEndpoint = betterStackEndpoint
	cfg.BetterStackToken = strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", ""))
	cfg.BetterStackTimeout = betterStackTimeout
	cfg.BetterStackMinLevel = parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServer := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServer == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServer
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTarget := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTarget == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	qstashCircuitEnabled, err := strconv.ParseBool(getEnv("QSTASH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_ENABLED: %w", err)
	}
	qstashCircuitFailureCount, err := getEnvAsInt("QSTASH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if qstashCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	qstashCircuitOpenTimeout, err := time.ParseDuration(getEnv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if qstashCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	qstashCircuitHalfOpenMaxReq, err := getEnvAsInt("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if qstashCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.QStashEnabled = qstashEnabled
	cfg.QStashBaseURL = getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")
	cfg.QStashToken = qstashToken
	cfg.QStashTargetBaseURL = qstashTarget
	cfg.QStashRetries = qstashRetries
	cfg.QStashCircuitEnabled = qstashCircuitEnabled
	cfg.QStashCircuitFailureCount = qstashCircuitFailureCount
	cfg.QStashCircuitOpenTimeout = qstashCircuitOpenTimeout
	cfg.QStashCircuitHalfOpenMaxReq = qstashCircuitHalfOpenMaxReq

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(raw string) ([]time.Weekday, error) {
	parts := splitCSV(raw)
	if len(parts) == 0 {
		return nil, fmt.Errorf("at least one weekday is required")
	}

	seen := make(map[time.Weekday]bool, len(parts))
	out := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		day, ok := weekdayNames[strings.ToLower(part)]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func envBool(key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return false
	}
	return value
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
