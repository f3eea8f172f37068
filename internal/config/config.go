package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort         = "8080"
	DefaultUploadDir    = "./uploads"
	DefaultOutputDir    = "./output"
	DefaultLogDir       = "./logs"
	DefaultServicesFile = "services.yaml"
	DefaultMaxUploadMB  = 500
	DefaultLogLevel     = "info"

	// Retention sweep runs hourly when enabled.
	DefaultRetentionSchedule = "0 * * * *"
	DefaultTimeZone          = "UTC"
	ActivityCapacity         = 100
)

type Config struct {
	// HTTP Server
	Port string

	// Workspace
	UploadDir   string
	OutputDir   string
	MaxUploadMB int

	// Services
	ServicesFile string

	// Logging
	LogLevel string
	LogDir   string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", DefaultPort),
		UploadDir:    getEnv("UPLOAD_DIR", DefaultUploadDir),
		OutputDir:    getEnv("OUTPUT_DIR", DefaultOutputDir),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB),
		ServicesFile: getEnv("SERVICES_FILE", DefaultServicesFile),
		LogLevel:     getEnv("LOG_LEVEL", DefaultLogLevel),
		LogDir:       getEnv("LOG_DIR", DefaultLogDir),
	}
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.UploadDir) == "" {
		errors = append(errors, "upload directory cannot be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errors = append(errors, "output directory cannot be empty")
	}

	if c.MaxUploadMB < 1 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d MB: must be at least 1", c.MaxUploadMB))
	} else if c.MaxUploadMB > 4096 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d MB: must be at most 4096", c.MaxUploadMB))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
