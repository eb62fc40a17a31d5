package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fysikteknologsektionen/ftek-login/models"
)

// DefaultDiscoveryURL is used when no discovery document URL is configured
const DefaultDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

// CallbackMarker is the query parameter that identifies a redirect back
// from the identity provider.
const CallbackMarker = "ftek_openid"

// Config is the application configuration
type Config struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	DBPath          string        `env:"DB_PATH"          envDefault:"./data/ftek_login.db"`
	SiteURL         string        `env:"SITE_URL"         envDefault:"http://localhost:8080"`
	UseHTTPS        bool          `env:"USE_HTTPS"        envDefault:"false"`
	DefaultLanding  string        `env:"DEFAULT_LANDING"  envDefault:"/admin/"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"1h"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT"       envDefault:"text"`

	OAuth   OAuthSettings   `envPrefix:"OAUTH_"`
	Refresh RefreshSettings `envPrefix:"REFRESH_"`
}

// OAuthSettings holds the identity provider settings
type OAuthSettings struct {
	DiscoveryDocURL string   `env:"DISCOVERY_DOC_URL" envDefault:"https://accounts.google.com/.well-known/openid-configuration"`
	ClientID        string   `env:"CLIENT_ID"`
	ClientSecret    string   `env:"CLIENT_SECRET"`
	Scopes          []string `env:"SCOPES"            envDefault:"openid,email,profile" envSeparator:","`
	UsersJSON       string   `env:"USERS"`

	Users models.EmailRules
}

// RefreshSettings controls the background profile refresher
type RefreshSettings struct {
	Enabled     bool          `env:"ENABLED"     envDefault:"true"`
	Interval    time.Duration `env:"INTERVAL"    envDefault:"168h"`
	At          string        `env:"AT"          envDefault:"02:00"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"1"`
}

// MissingSettings lists the required settings that are unset
func (s OAuthSettings) MissingSettings() []string {
	var missing []string
	if s.DiscoveryDocURL == "" {
		missing = append(missing, "OAUTH_DISCOVERY_DOC_URL")
	}
	if s.ClientID == "" {
		missing = append(missing, "OAUTH_CLIENT_ID")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "OAUTH_CLIENT_SECRET")
	}
	if len(s.Users) == 0 {
		missing = append(missing, "OAUTH_USERS")
	}
	return missing
}

// IsComplete reports whether every required setting is present
func (s OAuthSettings) IsComplete() bool {
	return len(s.MissingSettings()) == 0
}

// Load reads an optional .env file and parses the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the configuration from the process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	rules, err := models.ParseEmailRules(cfg.OAuth.UsersJSON)
	if err != nil {
		return nil, fmt.Errorf("OAUTH_USERS: %w", err)
	}
	cfg.OAuth.Users = rules

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SITE_URL must be an absolute URL, got %q", c.SiteURL)
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")

	if !strings.HasPrefix(c.DefaultLanding, "/") {
		c.DefaultLanding = "/" + c.DefaultLanding
	}
	if c.Refresh.Concurrency < 1 {
		c.Refresh.Concurrency = 1
	}
	return nil
}

// HomeURL is the site front page
func (c *Config) HomeURL() string {
	return c.SiteURL + "/"
}

// LoginURL is the native login page
func (c *Config) LoginURL() string {
	return c.SiteURL + "/login"
}

// RedirectURI is the callback address registered with the identity provider
func (c *Config) RedirectURI() string {
	return c.SiteURL + "/?" + CallbackMarker
}

// DefaultLandingURL is where users land after login without a usable target
func (c *Config) DefaultLandingURL() string {
	return c.SiteURL + c.DefaultLanding
}
