package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"orgaccess"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"ORG_API_ADDRESS" default:":9090"`
	MetricsAddress string `envconfig:"ORG_API_METRICS_ADDRESS" default:":8080"`
	LogLevel       string `envconfig:"ORG_API_LOG_LEVEL" default:"info"`
}

// New builds the configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment configuration")
	}
	return cfg, nil
}

// NewDefault returns the configuration defaults without consulting the
// environment. Used mostly by tests.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type:     "pgsql",
			Hostname: "localhost",
			Port:     5432,
			Name:     "orgaccess",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			Address:        ":9090",
			MetricsAddress: ":8080",
			LogLevel:       "info",
		},
	}
}
