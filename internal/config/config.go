// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvProduction is the APP_ENV value that switches cookies to cross-site mode.
const EnvProduction = "production"

// Config holds every setting the API needs at startup.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET,required"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"8h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174,https://fundfusions.netlify.app"`

	// GuardAllMutations extends the access guard from the owner listing to
	// every mutating or per-user route.
	GuardAllMutations bool `env:"GUARD_ALL_MUTATIONS" envDefault:"false"`

	Mongo   MongoConfig
	Storage StorageConfig
	Server  ServerConfig
}

// MongoConfig describes the document store connection.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASS"`
	Host     string `env:"DB_HOST"`
	AppName  string `env:"DB_APP_NAME" envDefault:"Assignment"`

	Database           string `env:"DB_NAME" envDefault:"FoundFusions"`
	CampaignCollection string `env:"CAMPAIGN_COLLECTION" envDefault:"campaign"`
	DonationCollection string `env:"DONATION_COLLECTION" envDefault:"donated collection"`
}

// StorageConfig describes the S3-compatible bucket used for campaign photos.
// Storage is optional; an empty endpoint disables it.
type StorageConfig struct {
	Endpoint       string `env:"S3_ENDPOINT"`
	PublicEndpoint string `env:"S3_PUBLIC_ENDPOINT"`
	AccessKey      string `env:"S3_ACCESS_KEY"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Bucket         string `env:"S3_BUCKET_NAME"`
	UseSSL         bool   `env:"S3_USE_SSL" envDefault:"false"`
}

// ServerConfig holds HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Enabled reports whether object storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

// ConnectionURI returns the MongoDB URI. An explicit MONGODB_URI wins;
// otherwise an Atlas SRV URI is assembled from the credential variables.
func (m MongoConfig) ConnectionURI() (string, error) {
	if m.URI != "" {
		return m.URI, nil
	}
	if m.User == "" || m.Password == "" || m.Host == "" {
		return "", fmt.Errorf("either MONGODB_URI or DB_USER, DB_PASS and DB_HOST must be set")
	}

	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(m.User, m.Password),
		Host:   m.Host,
		Path:   "/",
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if m.AppName != "" {
		q.Set("appName", m.AppName)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
