package engine

import "github.com/jtg86/azure-ai-demo/pkg/config"

// Generation parameters for each operation.
const (
	ChatMaxTokens        = 1000
	ChatTemperature      = 0.7
	SummarizeMaxTokens   = 500
	SummarizeTemperature = 0.5
)

// Config holds configuration for the engine.
type Config struct {
	// Deployment is reported in chat responses and sent as the model.
	Deployment string
}

// withDefaults fills an empty deployment with the package default.
func (c Config) withDefaults() Config {
	if c.Deployment == "" {
		c.Deployment = config.DefaultDeployment
	}
	return c
}
