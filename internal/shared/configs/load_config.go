package configs

import (
	"errors"
	"fmt"
	"strings"

	"proxy-logs/internal/models"
	"proxy-logs/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PROXYLOGS_STORAGE_REQUEST_TIMEOUT.
const EnvPrefix = "PROXYLOGS"

// LoadConfig reads configuration from file, applies defaults and environment overrides,
// and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		var ve validators.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	if err := validateReferences(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 65)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.rate_limit.requests_per_second", 0)
	v.SetDefault("server.rate_limit.burst", 0)

	v.SetDefault("log.level", "info")

	v.SetDefault("storage.request_timeout", 55)
	v.SetDefault("storage.page_size", 1000)
	v.SetDefault("storage.max_concurrent_downloads", 16)
	v.SetDefault("storage.allow_partial_downloads", false)

	v.SetDefault("side_cache.backend", "file")
	v.SetDefault("side_cache.root_dir", "./data/side-cache")
	v.SetDefault("side_cache.redis_addr", "")
	v.SetDefault("side_cache.key_prefix", "proxylogs:")
	v.SetDefault("side_cache.max_write_retries", 3)

	v.SetDefault("query.default_location", "")
	v.SetDefault("query.default_interval", 900)
	v.SetDefault("query.timezone", "")
	v.SetDefault("query.log_fields", fieldNames(models.CanonicalFields))
	v.SetDefault("query.ignore_status_codes", []string{"NONE/000"})
	v.SetDefault("query.excluded_object_markers", []string{".json"})
	v.SetDefault("query.response_headers", map[string]string{
		"cache-control":               "no-cache, no-store, must-revalidate",
		"access-control-allow-origin": "*",
	})
}

// validateReferences checks what struct tags cannot express.
func validateReferences(cfg *Config) error {
	if _, err := models.NewFieldLayout(cfg.Query.LogFields); err != nil {
		return fmt.Errorf("query.log_fields: %w", err)
	}
	if name := cfg.Query.DefaultLocation; name != "" {
		if _, ok := cfg.Locations[name]; !ok {
			return fmt.Errorf("query.default_location: unknown location %q", name)
		}
	}
	return nil
}

func fieldNames(fields []models.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "required_if":
		msg = fmt.Sprintf("%s (required when %s)", field, e.Param())
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case "timezone":
		msg = fmt.Sprintf("%s (unknown time zone %q)", field, e.Value())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
