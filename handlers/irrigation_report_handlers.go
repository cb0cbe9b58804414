package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/landapp/middleware"
	"p9e.in/landapp/models"
	"p9e.in/landapp/pkg/reporting"
)

// IrrigationReportHandlers exposes report generation and retrieval over HTTP.
type IrrigationReportHandlers struct {
	service *IrrigationReportService
}

func NewIrrigationReportHandlers(service *IrrigationReportService) *IrrigationReportHandlers {
	return &IrrigationReportHandlers{service: service}
}

// detailedReportResponse wraps the stored row's metadata around the full
// 31-day report.
type detailedReportResponse struct {
	ID          uuid.UUID                       `json:"id"`
	CompanyID   uuid.UUID                       `json:"companyId"`
	GeneratedBy string                          `json:"generatedBy,omitempty"`
	CreatedAt   time.Time                       `json:"createdAt"`
	Report      reporting.DetailedMonthlyReport `json:"report"`
}

func newDetailedReportResponse(row *models.DetailedMonthlyReport) detailedReportResponse {
	return detailedReportResponse{
		ID:          row.ID,
		CompanyID:   row.CompanyID,
		GeneratedBy: row.GeneratedBy,
		CreatedAt:   row.CreatedAt,
		Report:      row.ToReporting(),
	}
}

// writeServiceError maps the error classes onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, reporting.ErrDuplicateReport):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, reporting.ErrBusinessRule):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("❌ Report request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestScope resolves the company and the {name} path id of a request.
func requestScope(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, uuid.UUID, bool) {
	companyID, err := middleware.EffectiveCompanyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid %s", name), http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return companyID, id, true
}

func generatedBy(r *http.Request) string {
	if c := middleware.GetClaims(r); c != nil {
		if c.Name != "" {
			return c.Name
		}
		return c.UserID
	}
	return ""
}

// GenerateDetailedReport handles POST /facilities/{facilityId}/reports/detailed
func (h *IrrigationReportHandlers) GenerateDetailedReport(w http.ResponseWriter, r *http.Request) {
	companyID, facilityID, ok := requestScope(w, r, "facilityId")
	if !ok {
		return
	}

	var req DetailedReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.GeneratedBy = generatedBy(r)

	row, err := h.service.GenerateDetailedReport(r.Context(), companyID, facilityID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newDetailedReportResponse(row))
}

// GenerateSummaryReport handles POST /facilities/{facilityId}/reports/summary
func (h *IrrigationReportHandlers) GenerateSummaryReport(w http.ResponseWriter, r *http.Request) {
	companyID, facilityID, ok := requestScope(w, r, "facilityId")
	if !ok {
		return
	}

	var req SummaryReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.GeneratedBy = generatedBy(r)

	row, err := h.service.GenerateSummaryReport(r.Context(), companyID, facilityID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// ListFacilitySummaryReports handles GET /facilities/{facilityId}/reports/summary
func (h *IrrigationReportHandlers) ListFacilitySummaryReports(w http.ResponseWriter, r *http.Request) {
	companyID, facilityID, ok := requestScope(w, r, "facilityId")
	if !ok {
		return
	}

	reports, err := h.service.ListSummaryReports(r.Context(), companyID, &facilityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *IrrigationReportHandlers) GetDetailedReport(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := requestScope(w, r, "id")
	if !ok {
		return
	}

	row, err := h.service.GetDetailedReport(r.Context(), companyID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDetailedReportResponse(row))
}

func (h *IrrigationReportHandlers) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := requestScope(w, r, "id")
	if !ok {
		return
	}

	row, err := h.service.GetSummaryReport(r.Context(), companyID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// HealthCheck is the unauthenticated liveness probe.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
