package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/landapp/handlers"
	"p9e.in/landapp/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(reports *handlers.IrrigationReportHandlers) http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	registerReportRoutes(api, reports)

	return r
}
