package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.WhatsApp.APIToken = "tok"
	cfg.WhatsApp.PhoneNumberID = "123"
	cfg.WhatsApp.VerifyToken = "verify"
	cfg.AI.APIKey = "key"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad bind", func(c *Config) { c.Server.Bind = "tailnet" }, "server.bind"},
		{"custom bind without host", func(c *Config) { c.Server.Bind = "custom" }, "server.host"},
		{"missing api token", func(c *Config) { c.WhatsApp.APIToken = "" }, "whatsapp.apiToken"},
		{"missing phone id", func(c *Config) { c.WhatsApp.PhoneNumberID = "" }, "whatsapp.phoneNumberId"},
		{"missing verify token", func(c *Config) { c.WhatsApp.VerifyToken = "" }, "whatsapp.verifyToken"},
		{"bad provider", func(c *Config) { c.AI.Provider = "cohere" }, "ai.provider"},
		{"openrouter without key", func(c *Config) { c.AI.APIKey = "" }, "ai.apiKey"},
		{"negative idle", func(c *Config) { c.Session.IdleMinutes = -1 }, "session.idleMinutes"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad console style", func(c *Config) { c.Logging.ConsoleStyle = "fancy" }, "logging.consoleStyle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			issues := Validate(&cfg)
			assert.NotEmpty(t, issues)

			paths := make([]string, len(issues))
			for i, issue := range issues {
				paths[i] = issue.Path
			}
			assert.Contains(t, paths, tt.wantPath)
		})
	}
}

func TestValidate_AIProviderNoneNeedsNoKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI.Provider = "none"
	cfg.AI.APIKey = ""
	assert.Empty(t, Validate(&cfg))
}
