package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything a service binary needs at startup. Values are
// read from the environment, with an optional .env file for local runs.
type Config struct {
	Port     string `envconfig:"PORT"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"costmanager"`

	UsersServiceURL string `envconfig:"USERS_SERVICE_URL" default:"http://localhost:3001"`
	CostsServiceURL string `envconfig:"COSTS_SERVICE_URL" default:"http://localhost:3002"`

	KafkaBootstrapServers string `envconfig:"KAFKA_BOOTSTRAP_SERVERS"`

	ServiceName string `envconfig:"SERVICE_NAME"`
}

// Load reads the environment into a Config. serviceName and defaultPort
// apply when the corresponding variables are unset, so every binary can
// run with an empty environment in development.
func Load(serviceName, defaultPort string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	return &cfg, nil
}

func (c *Config) Development() bool {
	return c.Env != "production"
}
