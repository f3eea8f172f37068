package api

import (
	"net/http"

	"MerchantReports/api/constants"
	"MerchantReports/api/utils"
	"MerchantReports/internal/logger"
	"MerchantReports/internal/store"
)

// HealthHandler reports liveness plus store counters.
func HealthHandler(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := s.Stats()
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":       "ok",
			"datasets":     stats.Datasets,
			"reports":      stats.Reports,
			"lastUpload":   stats.LastUpload,
			"lastGenerate": stats.LastGenerate,
		})
	}
}

// NotFoundHandler audits unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	logger.Audit("[Gateway] [Error] " + r.Method + " " + r.URL.Path + " from " + clientIP(r) + " (route not found)")
	utils.RespondWithError(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowedHandler answers a known path with the wrong verb.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
}
