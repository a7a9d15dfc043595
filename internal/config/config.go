package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every environment variable read by Load.
// LINKMONO_DATABASE_HOST maps to database.host.
const EnvPrefix = "LINKMONO_"

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port" validate:"required,numeric"`
	Timezone string `koanf:"timezone" validate:"required"`
}

// DatabaseConfig holds PostgreSQL database connection settings.
// PingTimeoutSec bounds the startup ping and is also sent as connect_timeout.
// StatementTimeoutMs caps every query of a session; 0 keeps the server default.
type DatabaseConfig struct {
	Host               string `koanf:"host" validate:"required"`
	Port               string `koanf:"port" validate:"required"`
	User               string `koanf:"user" validate:"required"`
	Password           string `koanf:"password"`
	Name               string `koanf:"name" validate:"required"`
	SSLMode            string `koanf:"sslmode"`
	MaxOpenConns       int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns       int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeSec int    `koanf:"conn_max_lifetime_sec" validate:"gte=0"`
	PingTimeoutSec     int    `koanf:"ping_timeout_sec" validate:"gte=1"`
	StatementTimeoutMs int    `koanf:"statement_timeout_ms" validate:"gte=0"`
}

// MinIOConfig holds object storage settings for avatars and thumbnails.
// Storage is optional: an empty Endpoint disables presigning.
type MinIOConfig struct {
	Endpoint         string `koanf:"endpoint"`
	AccessKey        string `koanf:"access_key" validate:"required_with=Endpoint"`
	SecretKey        string `koanf:"secret_key" validate:"required_with=Endpoint"`
	Bucket           string `koanf:"bucket" validate:"required_with=Endpoint"`
	UseSSL           bool   `koanf:"use_ssl"`
	PresignExpirySec int    `koanf:"presign_expiry_sec" validate:"gte=60"`
}

// RedisConfig holds the search count cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr        string `koanf:"addr"`
	Password    string `koanf:"password"`
	DB          int    `koanf:"db" validate:"gte=0"`
	CountTTLSec int    `koanf:"count_ttl_sec" validate:"gte=1"`
}

// AuthConfig holds the secret used to verify session tokens.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// LogConfig controls the zerolog level.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	MinIO    MinIOConfig    `koanf:"minio"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
}

// Location resolves Server.Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PingTimeout is the deadline for the connection check at startup.
func (c DatabaseConfig) PingTimeout() time.Duration {
	return time.Duration(c.PingTimeoutSec) * time.Second
}

// ConnMaxLifetime is how long a pooled connection may be reused.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeSec) * time.Second
}

// PresignExpiry is the lifetime of presigned image URLs.
func (c MinIOConfig) PresignExpiry() time.Duration {
	return time.Duration(c.PresignExpirySec) * time.Second
}

// CountTTL is how long cached search counts stay valid.
func (c RedisConfig) CountTTL() time.Duration {
	return time.Duration(c.CountTTLSec) * time.Second
}

func defaults() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:     "localhost:8080",
			Port:     "8080",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
			PingTimeoutSec:     5,
			StatementTimeoutMs: 15000,
		},
		MinIO: MinIOConfig{
			PresignExpirySec: 3600,
		},
		Redis: RedisConfig{
			CountTTLSec: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// envKey maps LINKMONO_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Load reads configuration from environment variables on top of the defaults.
// A .env file is auto-loaded by the main package through godotenv/autoload;
// real environment variables take precedence.
func Load() (*AppConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
