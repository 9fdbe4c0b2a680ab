// Package identity selects the Azure credential used to reach Key Vault.
//
// Inside Azure App Service the platform injects a managed identity, so the
// resolver uses it directly. Everywhere else it falls back to the default
// credential chain (environment, workload identity, managed identity,
// Azure CLI, Azure Developer CLI), which suits local development.
package identity

import (
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/debug"
)

// HostedEnvVar is set by Azure App Service on every instance.
const HostedEnvVar = "WEBSITE_INSTANCE_ID"

// Kind identifies which credential mechanism was selected.
type Kind string

const (
	KindManagedIdentity Kind = "managed_identity"
	KindDefaultChain    Kind = "default_chain"
)

// Credential is a token-producing handle together with the mechanism that
// produced it. It is immutable once resolved.
type Credential struct {
	azcore.TokenCredential
	Kind Kind
}

// Options controls credential selection.
type Options struct {
	// Hosted is true when running inside Azure App Service.
	Hosted bool

	// ManagedIdentityClientID selects a user-assigned managed identity.
	// Empty means the system-assigned identity.
	ManagedIdentityClientID string
}

// Resolver builds a Credential from Options.
type Resolver func(Options) (*Credential, error)

// Resolve picks the managed identity when hosted and the default chain
// otherwise. Construction does not contact the identity provider; token
// acquisition happens on first use by the caller. A construction failure
// is reported as a configuration error.
func Resolve(opts Options) (*Credential, error) {
	kind := SelectKind(opts)

	var (
		cred azcore.TokenCredential
		err  error
	)
	switch kind {
	case KindManagedIdentity:
		var miOpts *azidentity.ManagedIdentityCredentialOptions
		if opts.ManagedIdentityClientID != "" {
			miOpts = &azidentity.ManagedIdentityCredentialOptions{
				ID: azidentity.ClientID(opts.ManagedIdentityClientID),
			}
		}
		cred, err = azidentity.NewManagedIdentityCredential(miOpts)
	default:
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		apiErr := api.NewConfigurationError(fmt.Sprintf("creating %s credential: %v", kind, err))
		apiErr.Err = err
		return nil, apiErr
	}

	debug.Log("identity", "credential resolved", slog.String("kind", string(kind)))
	return &Credential{TokenCredential: cred, Kind: kind}, nil
}

// SelectKind reports which mechanism Resolve would use for opts.
func SelectKind(opts Options) Kind {
	if opts.Hosted {
		return KindManagedIdentity
	}
	return KindDefaultChain
}
