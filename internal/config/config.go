package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Match    MatchConfig
	Importer ImporterConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Debug       bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// CacheConfig points at Redis. An unreachable Redis never fails startup;
// the cache layer degrades to a no-op instead.
type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// AuthConfig drives token issuance. JWTRefreshSecret falls back to
// JWTSecret when unset so a single-secret deployment stays valid.
type AuthConfig struct {
	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

// MatchConfig feeds the engine's weights. The defaults mirror the engine's
// own: skill overlap dominates and the pair sums to one.
type MatchConfig struct {
	SkillWeight      float64
	KeywordWeight    float64
	ScreeningWorkers int
}

type ImporterConfig struct {
	AllowedDomains []string
	Headless       bool
	RequestTimeout time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optFloat := func(key string, def float64) float64 {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return f
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Debug:       optBool("APP_DEBUG", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 2)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 30*time.Minute),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 5*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Cache = CacheConfig{
		RedisHost:     opt("REDIS_HOST"),
		RedisPort:     opt("REDIS_PORT"),
		RedisPassword: opt("REDIS_PASSWORD"),
		RedisDB:       optInt("REDIS_DB", 0),
		TTL:           optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:        req("JWT_SECRET"),
		JWTRefreshSecret: opt("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   optDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:  optDuration("REFRESH_TOKEN_TTL", 720*time.Hour),
	}
	if cfg.Auth.JWTRefreshSecret == "" {
		cfg.Auth.JWTRefreshSecret = cfg.Auth.JWTSecret
	}

	cfg.Match = MatchConfig{
		SkillWeight:      optFloat("MATCH_SKILL_WEIGHT", 0.6),
		KeywordWeight:    optFloat("MATCH_KEYWORD_WEIGHT", 0.4),
		ScreeningWorkers: optInt("SCREEN_WORKERS", 4),
	}

	cfg.Importer = ImporterConfig{
		AllowedDomains: splitCSV(opt("IMPORT_ALLOWED_DOMAINS")),
		Headless:       optBool("IMPORT_HEADLESS", false),
		RequestTimeout: optDuration("IMPORT_TIMEOUT", 20*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
