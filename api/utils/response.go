package utils

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
)

// logLevel keeps client errors at Debug; the request logger already
// reports them at Warn.
func logLevel(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelDebug
}

// Error response helper
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	slog.Log(context.Background(), logLevel(status), "request failed", "status", status, "error", errMsg)
	writeError(w, status, errMsg)
}

func writeError(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithJSON writes payload as the JSON body with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// RespondWithPayload sends {"success": true} merged with the fields of payload.
func RespondWithPayload(w http.ResponseWriter, payload map[string]interface{}) {
	resp := map[string]interface{}{"success": true}
	for k, v := range payload {
		resp[k] = v
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrParse),
		errors.Is(err, model.ErrNoData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithDomainError writes err with the status for its kind. Errors
// without a kind are reported with fallback instead of their internal text.
func RespondWithDomainError(w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)
	msg := fallback
	var me *model.Error
	if errors.As(err, &me) {
		msg = me.Message
	}
	slog.Log(context.Background(), logLevel(status), "request failed", "status", status, "error", msg, "cause", err)
	writeError(w, status, msg)
}
