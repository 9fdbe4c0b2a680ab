// Package api defines the wire types and error kinds for the Azure AI demo
// gateway.
//
// The package performs no I/O. It provides:
//   - [ChatRequest] and [SummarizeRequest]: inbound JSON bodies with validation
//   - [ChatResponse], [SummarizeResponse], [HealthResponse], [InfoResponse]: outbound JSON bodies
//   - [Error]: a typed error carrying an [ErrorKind] for logging and status mapping
//
// Externally, every error is rendered as {"error": "<message>"}. The kind is
// only used internally to pick the HTTP status and to label logs and metrics.
package api
