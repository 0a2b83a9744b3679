package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/vytor/speakflash/internal/logger"
)

type Config struct {
	Addr             string `env:"ADDR" envDefault:":8080" validate:"required"`
	DBPath           string `env:"DB_PATH" envDefault:"file:speakflash.db" validate:"required"`
	CatalogPath      string `env:"CATALOG_PATH" envDefault:"data/catalog.toml" validate:"required"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"INFO"`
	FlushWorkerCount int    `env:"FLUSH_WORKER_COUNT" envDefault:"1" validate:"gte=1,lte=16"`
	FlushQueueSize   int    `env:"FLUSH_QUEUE_SIZE" envDefault:"16" validate:"gte=1"`
	SessionSize      int    `env:"SESSION_SIZE" envDefault:"15" validate:"gte=1,lte=100"`
	MaxDuePerSession int    `env:"MAX_DUE_PER_SESSION" envDefault:"10" validate:"gte=0"`
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying the defaults declared on Config.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.MaxDuePerSession > c.SessionSize && c.SessionSize > 0 {
		problems = append(problems, fmt.Sprintf("MAX_DUE_PER_SESSION (%d) cannot exceed SESSION_SIZE (%d)", c.MaxDuePerSession, c.SessionSize))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			problems = append(problems, fmt.Sprintf("CATALOG_PATH %q is not readable: %v", c.CatalogPath, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " cannot be empty"
	case "gte":
		return fmt.Sprintf("%s must be at least %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag())
	}
}

// LogSummary writes the effective configuration at debug level.
func (c Config) LogSummary(log *logger.Logger) {
	log.Debug("addr=%s", c.Addr)
	log.Debug("db_path=%s", c.DBPath)
	log.Debug("catalog_path=%s", c.CatalogPath)
	log.Debug("log_level=%s", c.LogLevel)
	log.Debug("flush_worker_count=%d", c.FlushWorkerCount)
	log.Debug("flush_queue_size=%d", c.FlushQueueSize)
	log.Debug("session_size=%d", c.SessionSize)
	log.Debug("max_due_per_session=%d", c.MaxDuePerSession)
}
