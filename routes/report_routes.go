package routes

import (
	"github.com/gorilla/mux"

	"p9e.in/landapp/handlers"
)

// registerReportRoutes registers the monthly irrigation report routes
func registerReportRoutes(api *mux.Router, h *handlers.IrrigationReportHandlers) {
	// Generation, scoped to a facility
	api.HandleFunc("/facilities/{facilityId}/reports/detailed", h.GenerateDetailedReport).Methods("POST")
	api.HandleFunc("/facilities/{facilityId}/reports/summary", h.GenerateSummaryReport).Methods("POST")
	api.HandleFunc("/facilities/{facilityId}/reports/summary", h.ListFacilitySummaryReports).Methods("GET")

	// Detailed reports
	api.HandleFunc("/reports/detailed/{id}", h.GetDetailedReport).Methods("GET")
	api.HandleFunc("/reports/detailed/{id}/export/excel", h.ExportDetailedReportExcel).Methods("GET")

	// Summary reports
	api.HandleFunc("/reports/summary/export/csv", h.ExportSummaryReportsCSV).Methods("GET")
	api.HandleFunc("/reports/summary/{id}", h.GetSummaryReport).Methods("GET")
	api.HandleFunc("/reports/summary/{id}/export/excel", h.ExportSummaryReportExcel).Methods("GET")
}
