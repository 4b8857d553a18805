package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	StorageDriver  string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	MigrationsAuto bool   `mapstructure:"MIGRATIONS_AUTO"`

	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer    string `mapstructure:"AUTH_ISSUER"`
	AuthAudience  string `mapstructure:"AUTH_AUDIENCE"`

	NotifyWebhookURL    string        `mapstructure:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookSecret string        `mapstructure:"NOTIFY_WEBHOOK_SECRET"`
	NotifyTimeout       time.Duration `mapstructure:"NOTIFY_TIMEOUT"`

	ScheduleHorizonDays int `mapstructure:"SCHEDULE_HORIZON_DAYS"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"ENV":                   "development",
	"APP_NAME":              "medication-adherence",
	"STORAGE_DRIVER":        DriverMemory,
	"SQLITE_PATH":           "medication_adherence.db",
	"DB_MAX_OPEN_CONNS":     10,
	"DB_MAX_IDLE_CONNS":     5,
	"MIGRATIONS_AUTO":       true,
	"NOTIFY_TIMEOUT":        "5s",
	"SCHEDULE_HORIZON_DAYS": 90,
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
	"READ_TIMEOUT":          "5s",
	"WRITE_TIMEOUT":         "10s",
	"SHUTDOWN_TIMEOUT":      "10s",
}

// keys sin default que igual hay que bindear para que Unmarshal las vea.
var optional = []string{
	"DATABASE_URL",
	"AUTH_JWT_SECRET",
	"AUTH_ISSUER",
	"AUTH_AUDIENCE",
	"NOTIFY_WEBHOOK_URL",
	"NOTIFY_WEBHOOK_SECRET",
	"LOG_FILE",
	"LOG_MAX_SIZE_MB",
	"LOG_MAX_BACKUPS",
	"LOG_MAX_AGE_DAYS",
}

// Load lee env vars y, si existe, un .env en el directorio actual.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile es Load con otro archivo dotenv. Un archivo ausente no es error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
		_ = v.BindEnv(k)
	}
	for _, k := range optional {
		_ = v.BindEnv(k)
	}

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Por debajo del tope de ventana del generador de dosis.
const maxHorizonDays = 3650

// Validate rechaza combinaciones con las que no se debe arrancar.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be memory, postgres or sqlite, got %q", c.StorageDriver))
	}

	if c.IsProduction() {
		if c.AuthJWTSecret == "" {
			errs = append(errs, errors.New("AUTH_JWT_SECRET is required in production"))
		}
		if c.StorageDriver == DriverMemory {
			errs = append(errs, errors.New("STORAGE_DRIVER memory is not allowed in production"))
		}
	}

	if c.ScheduleHorizonDays <= 0 || c.ScheduleHorizonDays > maxHorizonDays {
		errs = append(errs, fmt.Errorf("SCHEDULE_HORIZON_DAYS must be in 1..%d, got %d", maxHorizonDays, c.ScheduleHorizonDays))
	}

	return errors.Join(errs...)
}
