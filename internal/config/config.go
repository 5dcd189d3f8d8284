// Package config loads shoptext configuration with the priority
// defaults → shoptext.toml → environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/shoptext/shoptext/internal/sms"
)

// Config is the top-level shoptext configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Shopify   ShopifyConfig   `toml:"shopify"`
	Termii    TermiiConfig    `toml:"termii"`
	Templates TemplatesConfig `toml:"templates"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ShutdownTimeout int    `toml:"shutdown_timeout"` // seconds
}

// ShopifyConfig holds the webhook signing secret. This is the webhook secret
// from Settings → Notifications → Webhooks, not the app's client secret.
type ShopifyConfig struct {
	WebhookSecret string `toml:"webhook_secret"`
}

// TermiiConfig holds the SMS gateway credentials. Backend "termii" (default)
// sends for real; "log" prints sends to the log for development.
type TermiiConfig struct {
	Backend            string `toml:"backend"`
	APIKey             string `toml:"api_key"`
	SenderID           string `toml:"sender_id"`
	BaseURL            string `toml:"base_url"`
	Channel            string `toml:"channel"`
	DefaultCountryCode string `toml:"default_country_code"`
}

type TemplatesConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8820,
			ShutdownTimeout: 10,
		},
		Termii: TermiiConfig{
			Backend: "termii",
			Channel: string(sms.ChannelGeneric),
		},
		Templates: TemplatesConfig{
			Path: "./shoptext_templates.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration with priority: defaults → config file → env vars.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = "shoptext.toml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Termii.Backend {
	case "termii", "log":
	default:
		return fmt.Errorf("termii.backend must be \"termii\" or \"log\", got %q", c.Termii.Backend)
	}
	if c.Termii.SenderID != "" {
		if err := validateSenderID(c.Termii.SenderID); err != nil {
			return err
		}
	}
	if c.Termii.Channel != "" && !sms.Channel(c.Termii.Channel).Valid() {
		return fmt.Errorf("termii.channel must be one of: generic, dnd, whatsapp, voice; got %q", c.Termii.Channel)
	}
	if c.Termii.DefaultCountryCode != "" {
		for _, r := range c.Termii.DefaultCountryCode {
			if r < '0' || r > '9' {
				return fmt.Errorf("termii.default_country_code must be digits only, got %q", c.Termii.DefaultCountryCode)
			}
		}
	}
	if c.Templates.Path == "" {
		return fmt.Errorf("templates.path is required")
	}
	if c.Logging.Level != "" {
		switch c.Logging.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
		}
	}
	return nil
}

// validateSenderID enforces Termii's sender ID rules: 3-11 alphanumeric
// characters (spaces allowed mid-name).
func validateSenderID(id string) error {
	if len(id) < 3 || len(id) > 11 {
		return fmt.Errorf("termii.sender_id must be 3-11 characters, got %d", len(id))
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		default:
			return fmt.Errorf("termii.sender_id must be alphanumeric, got %q", id)
		}
	}
	return nil
}

// Address returns the host:port string for the server to listen on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SHOPTEXT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if err := envInt("SHOPTEXT_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if v := os.Getenv("SHOPTEXT_SHOPIFY_WEBHOOK_SECRET"); v != "" {
		cfg.Shopify.WebhookSecret = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_BACKEND"); v != "" {
		cfg.Termii.Backend = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_API_KEY"); v != "" {
		cfg.Termii.APIKey = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_SENDER_ID"); v != "" {
		cfg.Termii.SenderID = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_BASE_URL"); v != "" {
		cfg.Termii.BaseURL = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_CHANNEL"); v != "" {
		cfg.Termii.Channel = v
	}
	if v := os.Getenv("SHOPTEXT_TERMII_DEFAULT_COUNTRY_CODE"); v != "" {
		cfg.Termii.DefaultCountryCode = v
	}
	if v := os.Getenv("SHOPTEXT_TEMPLATES_PATH"); v != "" {
		cfg.Templates.Path = v
	}
	if v := os.Getenv("SHOPTEXT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SHOPTEXT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// envInt reads an integer from the named environment variable.
// Returns an error if the value is set but not a valid integer.
func envInt(name string, dest *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	*dest = n
	return nil
}
