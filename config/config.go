package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/roamhub/booking-ref-system/internal/domain/types"
	"github.com/roamhub/booking-ref-system/pkg/configparser"
)

// Flags
var (
	modeFlag        = flag.String("mode", "", "application mode (allocator-service | conformance)")
	serviceFlag     = flag.String("service", "HTL", "service code for conformance mode")
	concurrencyFlag = flag.Int("n", 500, "number of concurrent allocations for conformance mode")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		Database    DatabaseConfig
		RabbitMQ    RabbitMQConfig
		Allocator   AllocatorConfig
		Services    ServicesConfig
		Auth        Auth
		Conformance ConformanceConfig
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"roamhub_user"`
		Password string `env:"DATABASE_PASSWORD" default:"roamhub_pass"`
		Database string `env:"DATABASE_DATABASE" default:"roamhub_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	// AllocatorConfig drives the reference allocator itself.
	AllocatorConfig struct {
		// Registered service codes, comma-separated. Extending the set is a
		// config change, not a code change.
		ServiceCodes string `env:"ALLOCATOR_SERVICE_CODES" default:"HTL,FLT,PKG"`

		// StoreDriver selects the sequence store implementation: memory | postgres.
		StoreDriver string `env:"ALLOCATOR_STORE_DRIVER" default:"memory"`

		// StoreTimeout bounds one sequence store call; a slower store is
		// treated as unavailable and triggers the fallback path.
		StoreTimeout time.Duration `env:"ALLOCATOR_STORE_TIMEOUT" default:"2s"`

		LedgerBuffer     int           `env:"ALLOCATOR_LEDGER_BUFFER" default:"1024"`
		LedgerRetries    int           `env:"ALLOCATOR_LEDGER_RETRIES" default:"3"`
		LedgerRetryDelay time.Duration `env:"ALLOCATOR_LEDGER_RETRY_DELAY" default:"100ms"`
	}

	ServicesConfig struct {
		AllocatorService string `env:"SERVICES_ALLOCATOR_SERVICE" default:"3000"`
	}

	Auth struct {
		// JWTSecret guards the ops endpoints (/stats, /ws/allocations).
		// Empty secret disables the guard.
		JWTSecret string `env:"AUTH_JWT_SECRET"`
	}

	ConformanceConfig struct {
		Service     string
		Concurrency int
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading environment variables and parsing into the config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)
	cfg.Conformance.Service = *serviceFlag
	cfg.Conformance.Concurrency = *concurrencyFlag

	return nil
}
