package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so tokens can be stored as ${ENV_VAR} in the file.
func expandSensitiveFields(cfg *Config) {
	cfg.WhatsApp.APIToken = expandEnvVars(cfg.WhatsApp.APIToken)
	cfg.WhatsApp.VerifyToken = expandEnvVars(cfg.WhatsApp.VerifyToken)
	cfg.AI.APIKey = expandEnvVars(cfg.AI.APIKey)
	cfg.Sideband.Chatwoot.Token = expandEnvVars(cfg.Sideband.Chatwoot.Token)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. A missing file produces defaults plus env overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to a YAML config file.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = "loopback"
	}
	if cfg.WhatsApp.APIVersion == "" {
		cfg.WhatsApp.APIVersion = "v21.0"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openrouter"
	}
	if cfg.Session.IdleMinutes == 0 {
		cfg.Session.IdleMinutes = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = "pretty"
	}
}

// applyEnvOverrides reads COLIBRI_* environment variables and overrides
// config values. The original deployment configured everything through
// the environment, so these stay first-class.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COLIBRI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COLIBRI_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("COLIBRI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("WEBHOOK_VERIFY_TOKEN"); v != "" {
		cfg.WhatsApp.VerifyToken = v
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		cfg.WhatsApp.APIToken = v
	}
	if v := os.Getenv("BUSINESS_PHONE"); v != "" {
		cfg.WhatsApp.PhoneNumberID = v
	}
	if v := os.Getenv("API_VERSION"); v != "" {
		cfg.WhatsApp.APIVersion = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("ENABLE_TEST_ENDPOINT"); v != "" {
		cfg.Admin.EnableTestEndpoint = v == "true"
	}
}
