// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Accept the legacy GOOGLE_SCRIPT_URL / ALLOWED_ORIGIN names.
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before we read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every structured variable.
	// Nesting uses a double underscore:
	//
	//	FORMRELAY_SERVER__PORT            -> server.port
	//	FORMRELAY_UPSTREAM__TIMEOUT       -> upstream.timeout
	//	FORMRELAY_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
	EnvPrefix = "FORMRELAY_"

	// WildcardOrigin grants CORS access to every origin.
	WildcardOrigin = "*"
)

// legacyKeys maps the bare variable names the site has always been
// deployed with onto their koanf keys.
var legacyKeys = map[string]string{
	"GOOGLE_SCRIPT_URL": "upstream.script_url",
	"ALLOWED_ORIGIN":    "server.allowed_origin",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required"`

	// AllowedOrigin is either "*" or the one origin that receives a CORS grant.
	AllowedOrigin string `koanf:"allowed_origin" validate:"required"`
}

// UpstreamConfig describes the script endpoint that stores submissions.
type UpstreamConfig struct {
	ScriptURL string        `koanf:"script_url" validate:"required,url"`
	Timeout   time.Duration `koanf:"timeout" validate:"min=1ms"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
//
// Legacy variables are loaded first so the prefixed ones override them.
func LoadConfig() (*Config, error) {
	k, err := loadEnv()
	if err != nil {
		return nil, err
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

func loadEnv() (*koanf.Koanf, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		// An empty key tells the provider to skip the variable.
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	return k, nil
}

// AllowedOriginFromEnv resolves only the CORS origin, with the same
// precedence and default as LoadConfig. It is meant for responses that
// must still carry a grant when the full config failed to load.
func AllowedOriginFromEnv() string {
	k, err := loadEnv()
	if err != nil {
		return WildcardOrigin
	}

	if origin := k.String("server.allowed_origin"); origin != "" {
		return origin
	}
	return WildcardOrigin
}

// Validate runs the struct-tag rules and the observability rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// AllowsAnyOrigin reports whether CORS is granted to every origin.
func (c *ServerConfig) AllowsAnyOrigin() bool {
	return c.AllowedOrigin == WildcardOrigin
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = WildcardOrigin
	}

	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = DefaultUpstreamTimeout
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = c.Observability.GetLogLevel()
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "json"
	}
}

// DefaultUpstreamTimeout bounds the single outbound call a submission makes.
const DefaultUpstreamTimeout = 10 * time.Second
