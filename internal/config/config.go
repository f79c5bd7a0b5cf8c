package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Oxford     OxfordConfig     `yaml:"oxford"`
	FreeDict   FreeDictConfig   `yaml:"freedict"`
	Cache      CacheConfig      `yaml:"cache"`
	History    HistoryConfig    `yaml:"history"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings. The browser extension calls the API from a
// chrome-extension:// origin, which has to be listed here.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN disables
// the lookup cache and history.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout caps every cache and history query; zero leaves the server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
	AutoMigrate      bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}

// OxfordConfig holds Oxford Dictionaries API settings.
type OxfordConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"OXFORD_BASE_URL"       env-default:"https://od-api.oxforddictionaries.com:443/api/v1"`
	Language      string        `yaml:"language"       env:"OXFORD_LANGUAGE"       env-default:"en"`
	AppID         string        `yaml:"app_id"         env:"OXFORD_APP_ID"`
	AppKey        string        `yaml:"app_key"        env:"OXFORD_APP_KEY"`
	Timeout       time.Duration `yaml:"timeout"        env:"OXFORD_TIMEOUT"        env-default:"10s"`
	RetryDelay    time.Duration `yaml:"retry_delay"    env:"OXFORD_RETRY_DELAY"    env-default:"500ms"`
	DefaultRegion string        `yaml:"default_region" env:"OXFORD_DEFAULT_REGION" env-default:"us"`
}

// Dictionary backends.
const (
	ProviderOxford   = "oxford"
	ProviderFreeDict = "freedict"
)

// DictionaryConfig selects the dictionary backend. Oxford needs credentials;
// FreeDictionary is keyless and has no regional data.
type DictionaryConfig struct {
	Provider string `yaml:"provider" env:"DICTIONARY_PROVIDER" env-default:"oxford"`
}

// FreeDictConfig holds FreeDictionary API settings.
type FreeDictConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"FREEDICT_BASE_URL"    env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout    time.Duration `yaml:"timeout"     env:"FREEDICT_TIMEOUT"     env-default:"10s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"FREEDICT_RETRY_DELAY" env-default:"500ms"`
}

// CacheConfig controls the PostgreSQL-backed payload cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	TTL     time.Duration `yaml:"ttl"     env:"CACHE_TTL"     env-default:"168h"`
}

// HistoryConfig controls how long lookup history is kept by cmd/cleanup.
type HistoryConfig struct {
	Retention time.Duration `yaml:"retention" env:"HISTORY_RETENTION" env-default:"2160h"`
}

// AuthConfig holds bearer-token settings. An empty JWTSecret leaves the API open.
// With a secret set and Required false, anonymous requests are still served but
// presented tokens must be valid.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"wordlookup"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"8760h"`
	Required       bool          `yaml:"required"         env:"AUTH_REQUIRED"         env-default:"true"`
}

// Enabled reports whether bearer tokens are required.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
