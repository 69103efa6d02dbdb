// Package utils provides shared HTTP response helpers.
package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/assetdesk/assetdesk/internal/server/dto"
)

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already written to the client, log only.
		slog.Error("Failed to encode response", "err", err)
	}
}

// RespondError sends a structured API error as JSON.
func RespondError(w http.ResponseWriter, err *dto.APIError) {
	RespondErrorWithCode(w, err.StatusCode(), err.Code(), err.Error(), err.Details())
}

// RespondErrorWithCode sends a detailed error response as JSON with code and
// details.
func RespondErrorWithCode(w http.ResponseWriter, statusCode int, code dto.ErrorCode, message string, details map[string]any) {
	response := dto.ErrorResponse{
		Error: dto.ErrorDetails{
			Code:    code,
			Message: message,
		},
	}
	if len(details) > 0 {
		response.Details = details
	}
	RespondJSON(w, statusCode, response)
}
