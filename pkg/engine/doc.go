// Package engine implements the chat and summarize operations. The Engine
// frames each request as a system/user message pair, calls the shared
// completion client with fixed generation parameters, and shapes the result
// into the public response types. It knows nothing about HTTP.
package engine
