package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"MerchantReports/api/merchant"
	"MerchantReports/internal/dashboard"
)

// NewRouter wires every HTTP endpoint. sse may be nil, in which case
// /api/events is not served.
func NewRouter(env *merchant.Env, sse *dashboard.SSEServer) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Logging)
	router.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedHandler)

	router.HandleFunc("/health", HealthHandler(env.Store)).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/upload", merchant.UploadHandler(env)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/generate", merchant.GenerateHandler(env)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/merchant-totals", merchant.MerchantTotalsHandler(env)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/all-merchants", merchant.AllMerchantsHandler(env)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reports", merchant.ReportsHandler(env)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reports/{id}", merchant.ReportHandler(env)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/combined-summary", merchant.CombinedSummaryHandler(env)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/combined-summary/export", merchant.CombinedExportHandler(env)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/activity", merchant.ActivityHandler(env)).Methods(http.MethodGet)
	if sse != nil {
		apiRouter.HandleFunc("/events", sse.HandleSSE).Methods(http.MethodGet)
	}

	router.HandleFunc("/output/{file}", merchant.OutputFileHandler(env)).Methods(http.MethodGet)

	return router
}
