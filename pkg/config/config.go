// Package config provides unified configuration for the Azure AI demo gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (explicit path, AIDEMO_CONFIG, ./config.yaml)
//  3. Environment variable overrides (AZURE_*, PORT, WEBSITE_INSTANCE_ID, AIDEMO_*)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// The resulting Config is built once at startup and treated as immutable.
// Missing Azure endpoints are not startup errors: they surface as
// configuration errors on the first request that needs them.
package config

import "time"

// Config holds all configuration for the gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Azure         AzureConfig         `yaml:"azure"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8000
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 120s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
}

// AzureConfig holds the Azure OpenAI, Key Vault, and identity settings.
type AzureConfig struct {
	OpenAIEndpoint          string `yaml:"openai_endpoint"`            // AZURE_OPENAI_ENDPOINT
	Deployment              string `yaml:"deployment"`                 // AZURE_OPENAI_DEPLOYMENT, default: "gpt-35-turbo"
	KeyVaultURL             string `yaml:"keyvault_url"`               // AZURE_KEYVAULT_URL
	KeyVaultURLFile         string `yaml:"keyvault_url_file"`          // _file variant for keyvault_url
	Hosted                  bool   `yaml:"hosted"`                     // true when WEBSITE_INSTANCE_ID is set
	ManagedIdentityClientID string `yaml:"managed_identity_client_id"` // AZURE_CLIENT_ID, optional

	// Set when the variable exists in the environment, even if empty.
	openAIEndpointSet bool
	keyVaultURLSet    bool
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // TRACE, DEBUG, INFO, WARN, ERROR; default: INFO
	Format string `yaml:"format"` // "text" or "json", default: "text"
	Debug  string `yaml:"debug"`  // comma-separated debug categories
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// DefaultDeployment is the deployment used when none is configured.
const DefaultDeployment = "gpt-35-turbo"

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
		},
		Azure: AzureConfig{
			Deployment: DefaultDeployment,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// OpenAIEndpointConfigured reports whether a completion endpoint was
// provided. AZURE_OPENAI_ENDPOINT counts when present in the environment,
// even with an empty value; the client builder still rejects an empty one.
func (c *Config) OpenAIEndpointConfigured() bool {
	return c.Azure.OpenAIEndpoint != "" || c.Azure.openAIEndpointSet
}

// KeyVaultConfigured reports whether a secret store URL was provided, with
// the same presence rule for AZURE_KEYVAULT_URL.
func (c *Config) KeyVaultConfigured() bool {
	return c.Azure.KeyVaultURL != "" || c.Azure.keyVaultURLSet
}
