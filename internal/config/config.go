package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Port               string        `envconfig:"PORT" default:"8080"`
	MongoURL           string        `envconfig:"MONGO_URL"`
	MongoPublicURL     string        `envconfig:"MONGO_PUBLIC_URL"`
	MongoDB            string        `envconfig:"MONGO_DB" default:"bakehouse"`
	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	CORSOrigins        []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	FrontendURL        string        `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	GoogleClientID     string        `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string        `envconfig:"GOOGLE_REDIRECT_URL" default:"http://localhost:8080/api/auth/google/callback"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat          string        `envconfig:"LOG_FORMAT" default:"json"`
	Environment        string        `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	// Managed hosts expose the public URL when the internal one is absent.
	if cfg.MongoURL == "" {
		cfg.MongoURL = cfg.MongoPublicURL
	}
	if cfg.MongoURL == "" {
		return nil, errors.New("MONGO_URL or MONGO_PUBLIC_URL must be set")
	}
	return &cfg, nil
}
