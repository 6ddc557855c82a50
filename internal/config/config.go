package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	Environment   string `env:"APP_ENV" envDefault:"production"`
	LogJSON       string `env:"LOG_JSON"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8180"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"./static"`
	Supabase      SupabaseConfig
	Database      DatabaseConfig
	CORS          CORSConfig
}

// SupabaseConfig holds the identity provider settings
type SupabaseConfig struct {
	URL     string `env:"SUPABASE_URL"`
	AnonKey string `env:"SUPABASE_ANON_KEY"`
}

// DatabaseConfig holds relational store settings
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"mysql"`
	TiDBUser        string        `env:"TIDB_USER"`
	TiDBPassword    string        `env:"TIDB_PASSWORD"`
	TiDBHost        string        `env:"TIDB_HOST"`
	TiDBPort        string        `env:"TIDB_PORT" envDefault:"4000"`
	TiDBName        string        `env:"TIDB_DB_NAME"`
	TiDBTLS         string        `env:"TIDB_TLS" envDefault:"true"`
	PostgresURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"./data/memos.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	MonitorSchedule string        `env:"DB_MONITOR_SCHEDULE" envDefault:"@every 5m"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Origins        string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:8080,http://localhost:3000"`
	AllowedOrigins []string
}

// Load loads configuration from environment variables with defaults.
// Missing required values are reported together instead of producing a
// half-built connection string.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.CORS.AllowedOrigins = parseCommaSeparatedList(cfg.CORS.Origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the driver-dependent settings
func (c *Config) Validate() error {
	var missing []string
	required := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	required("SUPABASE_URL", c.Supabase.URL)
	required("SUPABASE_ANON_KEY", c.Supabase.AnonKey)

	switch c.Database.Driver {
	case DriverMySQL:
		required("TIDB_USER", c.Database.TiDBUser)
		required("TIDB_HOST", c.Database.TiDBHost)
		required("TIDB_PORT", c.Database.TiDBPort)
		required("TIDB_DB_NAME", c.Database.TiDBName)
	case DriverPostgres:
		required("DATABASE_URL", c.Database.PostgresURL)
	case DriverSQLite:
		required("SQLITE_PATH", c.Database.SQLitePath)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	for _, origin := range c.CORS.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin %q: must start with http:// or https://", origin)
		}
	}

	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the connection string for the configured driver
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverPostgres:
		return d.PostgresURL
	case DriverSQLite:
		return d.SQLitePath
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?tls=%s&parseTime=true",
			d.TiDBUser, d.TiDBPassword, d.TiDBHost, d.TiDBPort, d.TiDBName, d.TiDBTLS)
	}
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UseJSONLogs defaults to JSON everywhere except development
func (c *Config) UseJSONLogs() bool {
	if c.LogJSON != "" {
		return c.LogJSON == "true"
	}
	return !c.IsDevelopment()
}

// parseCommaSeparatedList splits a comma-separated string into a slice
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return []string{}
	}

	items := strings.Split(s, ",")
	result := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}
