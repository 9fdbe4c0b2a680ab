package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jtg86/azure-ai-demo/pkg/api"
)

// HTTPStatusFromError maps an error kind to the corresponding HTTP status
// code. Transport-level errors (body too large, unknown route) are handled
// separately by the HTTP adapter.
func HTTPStatusFromError(err error) int {
	switch api.KindOf(err) {
	case api.ErrorKindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// WriteErrorResponse writes {"error": message} with the given status code.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, api.ErrorResponse{Error: message})
}

// WriteError writes err's message, deriving the HTTP status code from its
// kind.
func WriteError(w http.ResponseWriter, err error) {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	WriteErrorResponse(w, msg, HTTPStatusFromError(err))
}
