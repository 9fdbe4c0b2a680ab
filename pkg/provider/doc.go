// Package provider defines the backend-neutral contract for chat completion
// calls. The azureopenai adapter implements it on top of go-openai; the
// engine depends only on these types.
package provider
