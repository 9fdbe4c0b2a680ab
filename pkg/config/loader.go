package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, AIDEMO_CONFIG env, ./config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. AIDEMO_CONFIG environment variable
// 3. ./config.yaml in the current directory
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("AIDEMO_CONFIG"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields. Unlike
// the YAML layer, a malformed numeric variable is an error rather than
// being silently ignored.
func applyEnvOverrides(cfg *Config) error {
	if v, ok := os.LookupEnv("AZURE_OPENAI_ENDPOINT"); ok {
		cfg.Azure.openAIEndpointSet = true
		if v != "" {
			cfg.Azure.OpenAIEndpoint = v
		}
	}
	if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); v != "" {
		cfg.Azure.Deployment = v
	}
	if v, ok := os.LookupEnv("AZURE_KEYVAULT_URL"); ok {
		cfg.Azure.keyVaultURLSet = true
		if v != "" {
			cfg.Azure.KeyVaultURL = v
		}
	}
	if v := os.Getenv("AZURE_CLIENT_ID"); v != "" {
		cfg.Azure.ManagedIdentityClientID = v
	}
	// App Service sets this on every instance; its value is irrelevant.
	if os.Getenv("WEBSITE_INSTANCE_ID") != "" {
		cfg.Azure.Hosted = true
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("AIDEMO_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AIDEMO_SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("AIDEMO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AIDEMO_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("AIDEMO_DEBUG"); v != "" {
		cfg.Logging.Debug = v
	}
	if v := os.Getenv("AIDEMO_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AIDEMO_METRICS_ENABLED %q: %w", v, err)
		}
		cfg.Observability.Metrics.Enabled = enabled
	}
	return nil
}

// resolveFileReferences reads _file fields and populates the corresponding value fields.
// If the value field is empty and the file field is set, the file is read,
// whitespace is trimmed, and the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// azure.keyvault_url_file -> azure.keyvault_url
	if cfg.Azure.KeyVaultURLFile != "" && cfg.Azure.KeyVaultURL == "" {
		val, err := readSecretFile(cfg.Azure.KeyVaultURLFile)
		if err != nil {
			return fmt.Errorf("azure.keyvault_url_file: %w", err)
		}
		cfg.Azure.KeyVaultURL = val
	}
	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
