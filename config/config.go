// Package config loads the member service settings from <name>.yaml with environment
// overrides.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"
	defaultHTTPPort           = 8080

	replicaEnvPrefix = "POSTGRES_REPLICAS_"
)

// ErrMissingPasswordKey is returned when security.passwordKey is not configured.
var ErrMissingPasswordKey = errors.New("security.passwordKey is required")

// Config is the root of config.yaml.
type Config struct {
	Env       EnvConfig        `json:"env" yaml:"env"`
	HTTP      HTTPConfig       `json:"http" yaml:"http"`
	Postgres  *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
	Security  SecurityConfig   `json:"security" yaml:"security"`
	Migration *MigrationConfig `json:"migration" yaml:"migration"`
}

// EnvConfig describes the running instance.
type EnvConfig struct {
	Env         string `json:"env" yaml:"env"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Debug       bool   `json:"debug" yaml:"debug"`
	Log         Log    `json:"log" yaml:"log"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Port               int          `json:"port" yaml:"port"`
	MaxRequestBodySize string       `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	AllowOrigins       []string     `json:"allowOrigins" yaml:"allowOrigins"`
	Timeouts           HTTPTimeouts `json:"timeouts" yaml:"timeouts"`
}

// HTTPTimeouts are passed to http.Server as is; zero means no limit.
type HTTPTimeouts struct {
	ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
}

// SecurityConfig holds the server-wide key of the credential hasher.
type SecurityConfig struct {
	PasswordKey string `json:"passwordKey" yaml:"passwordKey"`
}

// MigrationConfig toggles schema migrations on startup.
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Log selects the slog handler and level.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// New loads config.yaml from the working directory or a nearby config folder.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional settings and rejects a config without a password key.
func (cfg *Config) applyDefaults() error {
	if strings.TrimSpace(cfg.Security.PasswordKey) == "" {
		return errors.WithStack(ErrMissingPasswordKey)
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}

	return nil
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_<n>_{HOST,PORT,USERNAME,PASSWORD} starting at
// n=0 and stops at the first index without both host and port.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		lookup := func(field string) string {
			return os.Getenv(replicaEnvPrefix + strconv.Itoa(i) + "_" + field)
		}

		replica := postgres.ConnectionConfig{
			Host:     lookup("HOST"),
			Port:     lookup("PORT"),
			UserName: lookup("USERNAME"),
			Password: lookup("PASSWORD"),
		}
		if replica.Host == "" || replica.Port == "" {
			return replicas
		}

		replicas = append(replicas, replica)
	}
}
