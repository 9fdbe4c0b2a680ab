// Package keyvault fetches the completion API key from Azure Key Vault.
//
// The key is read once per process. After the first successful read every
// call returns the cached value without network activity; the value never
// expires or refreshes.
package keyvault

import (
	"context"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/identity"
	"github.com/jtg86/azure-ai-demo/pkg/lazy"
	"github.com/jtg86/azure-ai-demo/pkg/observability"
)

// SecretName is the Key Vault secret holding the Azure OpenAI API key.
const SecretName = "openai-api-key"

// ErrVaultURLMissing is returned before any network call when no vault URL
// is configured.
var ErrVaultURLMissing = api.NewConfigurationError("AZURE_KEYVAULT_URL environment variable is not set")

// SecretGetter is the subset of *azsecrets.Client used by the Fetcher.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// ClientFactory creates a SecretGetter for a vault.
type ClientFactory func(vaultURL string, cred azcore.TokenCredential) (SecretGetter, error)

// Config holds the Fetcher settings.
type Config struct {
	// VaultURL is the Key Vault URL, e.g. https://myvault.vault.azure.net/.
	VaultURL string

	// Identity selects the credential used to authenticate to the vault.
	Identity identity.Options
}

// Fetcher reads the API key from Key Vault at most once. Safe for
// concurrent use.
type Fetcher struct {
	cfg       Config
	resolve   identity.Resolver
	newClient ClientFactory
	logger    *slog.Logger
	secret    lazy.Value[string]
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithResolver replaces the credential resolver.
func WithResolver(r identity.Resolver) Option {
	return func(f *Fetcher) { f.resolve = r }
}

// WithClientFactory replaces the Key Vault client constructor.
func WithClientFactory(fn ClientFactory) Option {
	return func(f *Fetcher) { f.newClient = fn }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher. No network activity happens until Secret is called.
func New(cfg Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:       cfg,
		resolve:   identity.Resolve,
		newClient: newAzureClient,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Secret returns the API key, fetching it on the first successful call.
func (f *Fetcher) Secret(ctx context.Context) (string, error) {
	return f.secret.Get(ctx, f.fetch)
}

// fetched reports whether the secret has been retrieved.
func (f *Fetcher) fetched() bool {
	return f.secret.Loaded()
}

func (f *Fetcher) fetch(ctx context.Context) (string, error) {
	if f.cfg.VaultURL == "" {
		return "", ErrVaultURLMissing
	}

	cred, err := f.resolve(f.cfg.Identity)
	if err != nil {
		return "", err
	}

	client, err := f.newClient(f.cfg.VaultURL, cred)
	if err != nil {
		return "", api.NewUpstreamError(err)
	}

	resp, err := client.GetSecret(ctx, SecretName, "", nil)
	observability.InitializationsTotal.WithLabelValues("secret", statusLabel(err)).Inc()
	if err != nil {
		return "", api.NewUpstreamError(err)
	}
	if resp.Value == nil || *resp.Value == "" {
		return "", api.NewUpstreamErrorf("secret %q has no value", SecretName)
	}

	f.logger.Info("retrieved secret from key vault",
		slog.String("secret", SecretName),
		slog.String("credential", string(cred.Kind)),
	)
	return *resp.Value, nil
}

func newAzureClient(vaultURL string, cred azcore.TokenCredential) (SecretGetter, error) {
	return azsecrets.NewClient(vaultURL, cred, nil)
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
