// Package config loads and validates Colibri's configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Config is the root configuration for Colibri.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp,omitempty"`
	AI       AIConfig       `yaml:"ai,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Sideband SidebandConfig `yaml:"sideband,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Admin    AdminConfig    `yaml:"admin,omitempty"`
}

// ServerConfig controls the webhook HTTP server.
type ServerConfig struct {
	Port int    `yaml:"port,omitempty"`
	Bind string `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	Host string `yaml:"host,omitempty"` // used when bind: custom
}

// WhatsAppConfig holds Cloud API credentials. Token values may reference
// environment variables as ${VAR}.
type WhatsAppConfig struct {
	APIToken      string `yaml:"apiToken"`
	PhoneNumberID string `yaml:"phoneNumberId"`
	APIVersion    string `yaml:"apiVersion,omitempty"`
	VerifyToken   string `yaml:"verifyToken"`
}

// AIConfig configures the product-question assistant.
type AIConfig struct {
	Provider string `yaml:"provider,omitempty"` // "openrouter" | "none"
	APIKey   string `yaml:"apiKey,omitempty"`
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"baseUrl,omitempty"`
}

// SessionConfig controls conversational session expiry.
type SessionConfig struct {
	IdleMinutes int `yaml:"idleMinutes,omitempty"`
}

// SidebandConfig configures secondary event consumers.
type SidebandConfig struct {
	Chatwoot   ChatwootConfig   `yaml:"chatwoot,omitempty"`
	Transcript TranscriptConfig `yaml:"transcript,omitempty"`
}

// ChatwootConfig holds Chatwoot inbox credentials.
type ChatwootConfig struct {
	BaseURL string `yaml:"baseUrl,omitempty"`
	Token   string `yaml:"token,omitempty"`
	InboxID string `yaml:"inboxId,omitempty"`
}

// TranscriptConfig controls the SQLite conversation transcript.
type TranscriptConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // defaults to <data dir>/colibri.db
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}

// AdminConfig gates the operational endpoints.
type AdminConfig struct {
	EnableTestEndpoint bool `yaml:"enableTestEndpoint,omitempty"`
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 3000,
			Bind: "loopback",
		},
		WhatsApp: WhatsAppConfig{
			APIVersion: "v21.0",
		},
		AI: AIConfig{
			Provider: "openrouter",
		},
		Session: SessionConfig{
			IdleMinutes: 10,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
