package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 1-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}
	if cfg.Server.Bind == "custom" && cfg.Server.Host == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.host",
			Message: "host is required when bind is custom",
		})
	}

	// Cloud API credentials are mandatory: the process is useless without them.
	if cfg.WhatsApp.APIToken == "" {
		issues = append(issues, ValidationIssue{
			Path:    "whatsapp.apiToken",
			Message: "api token is required",
		})
	}
	if cfg.WhatsApp.PhoneNumberID == "" {
		issues = append(issues, ValidationIssue{
			Path:    "whatsapp.phoneNumberId",
			Message: "phone number id is required",
		})
	}
	if cfg.WhatsApp.VerifyToken == "" {
		issues = append(issues, ValidationIssue{
			Path:    "whatsapp.verifyToken",
			Message: "webhook verify token is required",
		})
	}

	validProviders := []string{"openrouter", "none"}
	if cfg.AI.Provider != "" && !slices.Contains(validProviders, cfg.AI.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "ai.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.AI.Provider),
		})
	}
	if cfg.AI.Provider == "openrouter" && cfg.AI.APIKey == "" {
		issues = append(issues, ValidationIssue{
			Path:    "ai.apiKey",
			Message: "api key is required when provider is openrouter",
		})
	}

	if cfg.Session.IdleMinutes < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "session.idleMinutes",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Session.IdleMinutes),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.ConsoleStyle),
		})
	}

	return issues
}
