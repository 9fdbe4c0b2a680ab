// Package azureopenai implements provider.Completer for Azure OpenAI on top
// of github.com/sashabaranov/go-openai.
//
// The Builder constructs exactly one client per process. It pulls the API key
// from a SecretSource (normally the Key Vault fetcher) on first use and pins
// the API version to APIVersion. The endpoint is passed through unvalidated;
// a bad endpoint shows up as an error on the first completion call.
package azureopenai
