package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Email     EmailConfig     `yaml:"email"`
	Token     TokenConfig     `yaml:"token"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirebaseConfig contains Firestore/Auth project settings
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// EmailConfig contains SendGrid settings. An empty APIKey switches the
// email service into console-logging mode: composed emails are logged and
// reported as soft failures instead of being sent.
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	AppURL   string `yaml:"app_url"`
}

// TokenConfig contains mentor decision token settings
type TokenConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings for the mail outbox worker
type SchedulerConfig struct {
	DeliverOutbox      string `yaml:"deliver_outbox"`
	MaxDeliveryRetries int    `yaml:"max_delivery_retries"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("EMAIL_FROM_NAME"); val != "" {
		c.Email.FromName = val
	}
	if val := os.Getenv("APP_URL"); val != "" {
		c.Email.AppURL = val
	}

	// Token
	if val := os.Getenv("DECISION_TOKEN_SECRET"); val != "" {
		c.Token.Secret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Firebase validation
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required")
	}

	// Email validation. APIKey may be empty (console fallback mode), but
	// the sender address must always be set so composed emails are
	// well-formed.
	if c.Email.From == "" {
		return fmt.Errorf("email from address is required")
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Incubation Centre"
	}
	if c.Email.AppURL == "" {
		c.Email.AppURL = "http://localhost:3000"
	}

	// Token validation
	if c.Token.Secret == "" {
		return fmt.Errorf("decision token secret is required")
	}
	if len(c.Token.Secret) < 32 {
		return fmt.Errorf("decision token secret must be at least 32 characters")
	}
	if c.Token.ExpiryHours == 0 {
		c.Token.ExpiryHours = 7 * 24 // 7 days
	}

	// Scheduler defaults
	if c.Scheduler.DeliverOutbox == "" {
		c.Scheduler.DeliverOutbox = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.MaxDeliveryRetries == 0 {
		c.Scheduler.MaxDeliveryRetries = 5
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
