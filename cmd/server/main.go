// Command server runs the Azure AI demo gateway.
//
// Configuration is read from an optional YAML file (-config flag,
// AIDEMO_CONFIG, or ./config.yaml) and overridden by environment variables:
//
//	AZURE_OPENAI_ENDPOINT   - Azure OpenAI resource endpoint
//	AZURE_OPENAI_DEPLOYMENT - Deployment name (default: gpt-35-turbo)
//	AZURE_KEYVAULT_URL      - Key Vault holding the openai-api-key secret
//	PORT                    - Listen port (default: 8000)
//	WEBSITE_INSTANCE_ID     - Set by App Service; selects managed identity
//	AZURE_CLIENT_ID         - Optional user-assigned managed identity
//
// A missing endpoint or vault URL is not a startup error; requests that need
// them fail with a 500 until they are configured.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jtg86/azure-ai-demo/pkg/config"
	"github.com/jtg86/azure-ai-demo/pkg/debug"
	"github.com/jtg86/azure-ai-demo/pkg/engine"
	"github.com/jtg86/azure-ai-demo/pkg/identity"
	"github.com/jtg86/azure-ai-demo/pkg/keyvault"
	"github.com/jtg86/azure-ai-demo/pkg/provider/azureopenai"
	transporthttp "github.com/jtg86/azure-ai-demo/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level, cfg.Logging.Format)
	logger := slog.Default()

	if cfg.Azure.OpenAIEndpoint == "" {
		logger.Warn("AZURE_OPENAI_ENDPOINT is not set; completion requests will fail")
	}
	if cfg.Azure.KeyVaultURL == "" {
		logger.Warn("AZURE_KEYVAULT_URL is not set; completion requests will fail")
	}

	secrets := keyvault.New(keyvault.Config{
		VaultURL: cfg.Azure.KeyVaultURL,
		Identity: identity.Options{
			Hosted:                  cfg.Azure.Hosted,
			ManagedIdentityClientID: cfg.Azure.ManagedIdentityClientID,
		},
	}, keyvault.WithLogger(logger))

	clients := azureopenai.NewBuilder(azureopenai.Config{
		Endpoint:   cfg.Azure.OpenAIEndpoint,
		Deployment: cfg.Azure.Deployment,
	}, secrets, logger)

	eng, err := engine.New(clients, engine.Config{Deployment: cfg.Azure.Deployment}, logger)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	adapterCfg := transporthttp.Config{
		MaxBodySize:              cfg.Server.MaxBodySize,
		OpenAIEndpointConfigured: cfg.OpenAIEndpointConfigured(),
		KeyVaultConfigured:       cfg.KeyVaultConfigured(),
		Logger:                   logger,
	}
	if cfg.Observability.Metrics.Enabled {
		adapterCfg.MetricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(eng,
		transporthttp.WithAddr(":"+strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithAdapterConfig(adapterCfg),
		transporthttp.WithLogger(logger),
	)

	logger.Info("starting azure ai demo",
		slog.Int("port", cfg.Server.Port),
		slog.String("deployment", cfg.Azure.Deployment),
		slog.Bool("hosted", cfg.Azure.Hosted),
		slog.Bool("metrics", cfg.Observability.Metrics.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
