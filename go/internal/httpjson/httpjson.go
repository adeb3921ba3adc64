// Package httpjson writes JSON responses for the directory handlers
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Write sends payload as JSON with status. The status line is already out when
// encoding fails, so the failure can only be logged.
func Write(w http.ResponseWriter, logger zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// Error sends {"error": message} with status
func Error(w http.ResponseWriter, logger zerolog.Logger, status int, message string) {
	Write(w, logger, status, map[string]string{"error": message})
}
