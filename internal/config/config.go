package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	CORS        CORSConfig
	Database    DatabaseConfig
	Migrations  MigrationsConfig
	Storage     StorageConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Trash       TrashConfig
	Monitor     MonitorConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host               string
	Port               string
	PublicBaseURL      string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	MaxConn            int
	MaxUploadBytes     int
	EnablePlayground   bool
	EnableMetrics      bool
	GraphQLMaxDepth    int
	GraphQLMaxParallel int
}

type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         time.Duration
}

// IsAllowed reports whether requests from origin may read responses.
func (c CORSConfig) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SlowQuery       time.Duration
}

// SanitizedURL hides credentials so the URL can be logged.
func (c DatabaseConfig) SanitizedURL() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.User == nil {
		return c.URL
	}
	return u.Scheme + "://***:***@" + u.Host + u.EscapedPath() + queryPart(u.RawQuery)
}

func queryPart(raw string) string {
	if raw == "" {
		return ""
	}
	return "?" + raw
}

type MigrationsConfig struct {
	Enabled bool
}

type StorageConfig struct {
	Driver        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	Region        string
	LocalPath     string
	SigningKey    string
	PresignExpiry time.Duration
}

// URL renders the S3 endpoint with its scheme.
func (c StorageConfig) URL() string {
	if c.UseSSL {
		return "https://" + c.Endpoint
	}
	return "http://" + c.Endpoint
}

// JWTConfig is loaded for deployments that front the API with token auth.
// The server does not verify bearer tokens; the secret doubles as the
// default signing key for local blob URLs.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type RedisConfig struct {
	URL         string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Enabled reports whether a redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type TrashConfig struct {
	Retention     time.Duration
	PurgeSchedule string
}

type MonitorConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suitable for local development.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	env, err := normalizeEnvironment(getString("APP_ENV", EnvDevelopment))
	if err != nil {
		return nil, err
	}

	port := getString("SERVER_PORT", "8000")
	jwtSecret := getString("JWT_SECRET", "change-this-secret-in-production")
	cfg := &Config{
		AppName:     getString("APP_NAME", "alle"),
		Environment: env,
		HTTP: HTTPConfig{
			Host:               getString("SERVER_HOST", "0.0.0.0"),
			Port:               port,
			PublicBaseURL:      strings.TrimRight(getString("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
			ReadTimeout:        getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:        getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:            getInt("SERVER_MAX_CONN", 0),
			MaxUploadBytes:     getInt("HTTP_MAX_UPLOAD_BYTES", 50*1024*1024),
			EnablePlayground:   getBool("GRAPHQL_PLAYGROUND", true),
			EnableMetrics:      getBool("METRICS_ENABLED", false),
			GraphQLMaxDepth:    getInt("GRAPHQL_MAX_DEPTH", 0),
			GraphQLMaxParallel: getInt("GRAPHQL_MAX_PARALLELISM", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			MaxAge:         getDuration("CORS_MAX_AGE", 24*time.Hour),
		},
		Database: DatabaseConfig{
			URL:             getString("DATABASE_URL", "sqlite://./alle.db"),
			MaxOpenConns:    getInt("DB_MAX_CONNS", 10),
			MaxIdleConns:    getInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			SlowQuery:       getDuration("DB_SLOW_QUERY", 200*time.Millisecond),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("MIGRATIONS_ENABLED", true),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getString("STORAGE_DRIVER", defaultStorageDriver(env))),
			Endpoint:      getString("S3_ENDPOINT", "localhost:9000"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        getString("S3_BUCKET", "alle-attachments"),
			UseSSL:        getBool("S3_USE_SSL", false),
			Region:        getString("S3_REGION", "us-east-1"),
			LocalPath:     getString("LOCAL_STORAGE_PATH", "./alle-blobs.db"),
			SigningKey:    getString("LOCAL_STORAGE_SIGNING_KEY", jwtSecret),
			PresignExpiry: getDuration("STORAGE_PRESIGN_EXPIRY", time.Hour),
		},
		JWT: JWTConfig{
			Secret:     jwtSecret,
			Expiration: getDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL:         os.Getenv("REDIS_URL"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          getInt("REDIS_DB", 0),
			DialTimeout: getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Trash: TrashConfig{
			Retention:     getDuration("TRASH_RETENTION", 7*24*time.Hour),
			PurgeSchedule: os.Getenv("TRASH_PURGE_SCHEDULE"),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 15*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", defaultEncoding(env)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

func (c *Config) validate() error {
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_UPLOAD_BYTES must be positive")
	}
	switch c.Storage.Driver {
	case StorageDriverS3:
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for the s3 storage driver")
		}
	case StorageDriverLocal:
		if c.Storage.SigningKey == "" {
			return fmt.Errorf("LOCAL_STORAGE_SIGNING_KEY is required for the local storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

func normalizeEnvironment(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "development", "dev":
		return EnvDevelopment, nil
	case "production", "prod":
		return EnvProduction, nil
	}
	return "", fmt.Errorf("invalid APP_ENV %q: expected development or production", value)
}

func defaultStorageDriver(env string) string {
	if env == EnvProduction {
		return StorageDriverS3
	}
	return StorageDriverLocal
}

func defaultEncoding(env string) string {
	if env == EnvProduction {
		return "json"
	}
	return "console"
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
