package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration shared by the client engine and the authority server
type Config struct {
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	CatalogPath string

	// Engine
	Mode              string        `validate:"oneof=standalone online"`
	ServerURL         string        `validate:"required_if=Mode online"`
	PlayerID          string        `validate:"required"`
	ClickCooldown     time.Duration `validate:"gt=0"`
	ResourceCooldown  time.Duration `validate:"gt=0"`
	ApprovalTimeout   time.Duration `validate:"gte=0"`
	CooldownTableSize int           `validate:"min=1"`
	DevMode           bool
	StepDelay         time.Duration `validate:"gte=0"`
	InventoryCapacity int           `validate:"min=1"`

	// Authority server
	Port           int           `validate:"min=1,max=65535"`
	APIKey         string        `validate:"omitempty,min=8"`
	SweepInterval  time.Duration `validate:"gt=0"`
	Storage        string        `validate:"oneof=memory postgres"`
	WorkerCount    int           `validate:"min=1"`
	TrustedProxies []string

	// Event publishing
	EventMaxRetries     int           `validate:"gte=0"`
	EventRetryDelay     time.Duration `validate:"gte=0"`
	EventDeadLetterPath string

	DBUser     string `validate:"required_if=Storage postgres"`
	DBPassword string
	DBHost     string `validate:"required_if=Storage postgres"`
	DBPort     string `validate:"required_if=Storage postgres"`
	DBName     string `validate:"required_if=Storage postgres"`
	DBMaxConns int    `validate:"min=1"`
}

var validate = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		Mode:              strings.ToLower(getEnv("MODE", DefaultMode)),
		ServerURL:         getEnv("SERVER_URL", ""),
		PlayerID:          getEnv("PLAYER_ID", DefaultPlayerID),
		ClickCooldown:     getEnvAsMillis("CLICK_COOLDOWN_MS", DefaultClickCooldown),
		ResourceCooldown:  getEnvAsMillis("RESOURCE_COOLDOWN_MS", DefaultResourceCooldown),
		ApprovalTimeout:   getEnvAsMillis("APPROVAL_TIMEOUT_MS", DefaultApprovalTimeout),
		CooldownTableSize: getEnvAsInt("COOLDOWN_TABLE_SIZE", DefaultCooldownTableSize),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		StepDelay:         getEnvAsMillis("STEP_DELAY_MS", DefaultStepDelay),
		InventoryCapacity: getEnvAsInt("INVENTORY_CAPACITY", DefaultInventoryCapacity),

		APIKey:        getEnv("API_KEY", ""),
		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", DefaultSweepInterval),
		Storage:       strings.ToLower(getEnv("STORAGE", DefaultStorage)),
		WorkerCount:   getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		TrustedProxies:      getEnvAsList("TRUSTED_PROXIES"),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "gathernode"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags on cfg
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}
	return nil
}

// IsDevelopment reports whether the environment is a local one
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDev || c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsMillis reads a millisecond count as a duration
func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return time.Duration(v) * time.Millisecond
}

// getEnvAsDuration parses a Go duration string such as "30s"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
