package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig              `mapstructure:"server" validate:"required"`
	Log       LogConfig                 `mapstructure:"log" validate:"required"`
	Storage   StorageConfig             `mapstructure:"storage" validate:"required"`
	SideCache SideCacheConfig           `mapstructure:"side_cache" validate:"required"`
	Query     QueryConfig               `mapstructure:"query" validate:"required"`
	Locations map[string]LocationConfig `mapstructure:"locations" validate:"required,min=1,dive"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int             `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int             `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int             `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int             `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int             `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	RateLimit         RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig limits queries per client IP. Zero requests_per_second disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`
	Burst             int     `mapstructure:"burst" validate:"min=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig holds object store access configuration.
type StorageConfig struct {
	RequestTimeout         int  `mapstructure:"request_timeout" validate:"required,min=1"` // seconds, per list call and per download
	PageSize               int  `mapstructure:"page_size" validate:"min=0"`
	MaxConcurrentDownloads int  `mapstructure:"max_concurrent_downloads" validate:"required,min=1"`
	AllowPartialDownloads  bool `mapstructure:"allow_partial_downloads"`
}

// SideCacheConfig selects where the servers, client IPs and status codes documents live.
type SideCacheConfig struct {
	Backend         string `mapstructure:"backend" validate:"required,oneof=file redis"`
	RootDir         string `mapstructure:"root_dir" validate:"required_if=Backend file"`
	RedisAddr       string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	MaxWriteRetries int    `mapstructure:"max_write_retries" validate:"min=0"`
}

// QueryConfig holds query defaults and log format settings.
type QueryConfig struct {
	DefaultLocation       string            `mapstructure:"default_location"`
	DefaultInterval       int               `mapstructure:"default_interval" validate:"required,min=1"` // seconds
	Timezone              string            `mapstructure:"timezone" validate:"omitempty,timezone"` // IANA name, empty for the host zone
	LogFields             []string          `mapstructure:"log_fields" validate:"required,min=1"`
	IgnoreStatusCodes     []string          `mapstructure:"ignore_status_codes"`
	ExcludedObjectMarkers []string          `mapstructure:"excluded_object_markers"`
	ResponseHeaders       map[string]string `mapstructure:"response_headers"`
}

// TimeLocation is the zone log timestamps are rendered in.
func (c QueryConfig) TimeLocation() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		// rejected by validation
		return time.Local
	}
	return loc
}

// LocationConfig describes one log source. The map key is the location name.
type LocationConfig struct {
	BucketName   string   `mapstructure:"bucket_name" validate:"required"`
	BucketType   string   `mapstructure:"bucket_type" validate:"required,oneof=gcs s3 file"`
	PathPrefix   string   `mapstructure:"path_prefix"`
	AuthFile     string   `mapstructure:"auth_file"`
	Region       string   `mapstructure:"region" validate:"required_if=BucketType s3"`
	Endpoint     string   `mapstructure:"endpoint"`
	ServerGroups []string `mapstructure:"server_groups"`
	StatusCodes  []string `mapstructure:"status_codes"`
}
