// Package transport defines the contract between the HTTP layer and the
// assistant operations, plus the net/http middleware chain and the JSON
// response writers shared by every route.
//
// # Handler Interface
//
// Assistant is implemented by the engine. The HTTP adapter in the http
// subpackage decodes request bodies into the pkg/api types, calls the
// Assistant and encodes the result.
//
// # Middleware
//
// Middleware wraps an http.Handler. Built-in middleware provides panic
// recovery, request ID assignment (X-Request-ID) and structured request
// logging via log/slog.
//
// # Errors
//
// Every failure is written as {"error": "<message>"}. Validation errors map
// to 400 and every other error kind to 500. The kind itself never reaches
// the client; it is kept for logs and metrics.
package transport
