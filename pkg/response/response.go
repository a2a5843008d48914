// Package response writes JSON bodies for the HTTP delivery layers.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/tair/storefront/pkg/logger"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// MessageBody is returned by endpoints that only confirm an action
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends payload with the given status
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// Detail sends an error body
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}
