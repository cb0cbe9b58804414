package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"p9e.in/landapp/models"
	"p9e.in/landapp/pkg/reporting"
)

// DetailedReportRequest selects the month and, optionally, which
// sprayfields fill the report's slots in order.
type DetailedReportRequest struct {
	Year          int         `json:"year"`
	Month         int         `json:"month"`
	SprayfieldIDs []uuid.UUID `json:"sprayfieldIds,omitempty"`
	GeneratedBy   string      `json:"-"`
}

type SummaryReportRequest struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	GeneratedBy string `json:"-"`
}

// IrrigationReportService fetches report inputs from the store, runs the
// engine and persists the result. Nothing is written unless the whole
// report was computed.
type IrrigationReportService struct {
	store  ReportStore
	engine *reporting.Engine
}

func NewIrrigationReportService(store ReportStore, engine *reporting.Engine) *IrrigationReportService {
	if engine == nil {
		engine = reporting.DefaultEngine()
	}
	return &IrrigationReportService{store: store, engine: engine}
}

// ownedFacility loads the facility and checks it belongs to companyID.
func (s *IrrigationReportService) ownedFacility(ctx context.Context, companyID, facilityID uuid.UUID) (*models.Facility, error) {
	facility, err := s.store.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if facility.CompanyID != companyID {
		return nil, fmt.Errorf("facility %s: %w", facilityID, reporting.ErrOwnershipMismatch)
	}
	return facility, nil
}

// reportFields resolves the sprayfields for a detailed report's slots.
// Without an explicit selection every active field of the facility is
// used, which fails when the facility has more fields than slots.
func (s *IrrigationReportService) reportFields(ctx context.Context, facilityID uuid.UUID, ids []uuid.UUID) ([]*reporting.SprayField, error) {
	if len(ids) > reporting.MaxReportFields {
		return nil, fmt.Errorf("%w: got %d", reporting.ErrTooManyFields, len(ids))
	}

	var rows []models.Sprayfield
	var err error
	if len(ids) == 0 {
		rows, err = s.store.ListSprayfields(ctx, facilityID)
		if err != nil {
			return nil, err
		}
		if len(rows) > reporting.MaxReportFields {
			return nil, fmt.Errorf("%w: facility has %d active sprayfields, select up to %d",
				reporting.ErrTooManyFields, len(rows), reporting.MaxReportFields)
		}
	} else {
		found, err := s.store.GetSprayfields(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]models.Sprayfield, len(found))
		for _, f := range found {
			byID[f.ID] = f
		}
		for _, id := range ids {
			f, ok := byID[id]
			if !ok {
				return nil, reporting.NotFoundError("sprayfield", id)
			}
			if f.FacilityID != facilityID {
				return nil, fmt.Errorf("sprayfield %s: %w", id, reporting.ErrOwnershipMismatch)
			}
			rows = append(rows, f)
		}
	}

	fields := make([]*reporting.SprayField, len(rows))
	for i := range rows {
		f := rows[i].ToReporting()
		fields[i] = &f
	}
	return fields, nil
}

// GenerateDetailedReport builds and stores the detailed report for one
// facility and month.
func (s *IrrigationReportService) GenerateDetailedReport(ctx context.Context, companyID, facilityID uuid.UUID, req DetailedReportRequest) (*models.DetailedMonthlyReport, error) {
	period, err := reporting.NewPeriod(req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedFacility(ctx, companyID, facilityID); err != nil {
		return nil, err
	}

	exists, err := s.store.DetailedReportExists(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("check existing detailed report: %w", err)
	}
	if exists {
		return nil, reporting.ErrDuplicateReport
	}

	fields, err := s.reportFields(ctx, facilityID, req.SprayfieldIDs)
	if err != nil {
		return nil, err
	}

	logs, err := s.store.ListIrrigationLogs(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("load irrigation logs: %w", err)
	}
	opLogs, err := s.store.ListOperatorLogs(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("load operator logs: %w", err)
	}
	priorRows, err := s.store.ListDetailedReports(ctx, facilityID, period.AddMonths(-reporting.FloatingWindow), period.Prev())
	if err != nil {
		return nil, fmt.Errorf("load prior detailed reports: %w", err)
	}

	in := reporting.DetailedReportInput{
		FacilityID: facilityID,
		Period:     period,
		Fields:     fields,
	}
	for _, l := range logs {
		in.Events = append(in.Events, l.ToReporting())
	}
	for _, l := range opLogs {
		in.Observations = append(in.Observations, l.ToReporting())
	}
	for i := range priorRows {
		in.PriorReports = append(in.PriorReports, priorRows[i].ToReporting())
	}

	log.Printf("📊 Generating detailed report facility=%s period=%s fields=%d events=%d prior=%d",
		facilityID, period, len(fields), len(in.Events), len(in.PriorReports))

	computed, err := s.engine.BuildDetailedReport(in)
	if err != nil {
		return nil, err
	}

	row := models.NewDetailedMonthlyReport(companyID, computed)
	row.GeneratedBy = req.GeneratedBy
	if err := s.store.CreateDetailedReport(ctx, row); err != nil {
		log.Printf("❌ Failed to save detailed report facility=%s period=%s: %v", facilityID, period, err)
		return nil, err
	}

	log.Printf("✅ Detailed report %s saved facility=%s period=%s irrigated=%v",
		row.ID, facilityID, period, row.DidIrrigationOccur)
	return row, nil
}

// GenerateSummaryReport builds, classifies and stores the irrigation
// summary for one facility and month.
func (s *IrrigationReportService) GenerateSummaryReport(ctx context.Context, companyID, facilityID uuid.UUID, req SummaryReportRequest) (*models.SummaryMonthlyReport, error) {
	period, err := reporting.NewPeriod(req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedFacility(ctx, companyID, facilityID); err != nil {
		return nil, err
	}

	exists, err := s.store.SummaryReportExists(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("check existing summary report: %w", err)
	}
	if exists {
		return nil, reporting.ErrDuplicateReport
	}

	rows, err := s.store.ListSprayfields(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("load sprayfields: %w", err)
	}
	logs, err := s.store.ListIrrigationLogs(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("load irrigation logs: %w", err)
	}
	samples, err := s.store.ListWastewaterSamples(ctx, facilityID, period)
	if err != nil {
		return nil, fmt.Errorf("load wastewater samples: %w", err)
	}

	in := reporting.SummaryReportInput{FacilityID: facilityID, Period: period}
	for i := range rows {
		in.Fields = append(in.Fields, rows[i].ToReporting())
	}
	for _, l := range logs {
		in.Events = append(in.Events, l.ToReporting())
	}
	for _, smp := range samples {
		in.Samples = append(in.Samples, smp.ToReporting())
	}

	computed, err := s.engine.BuildSummaryReport(in)
	if err != nil {
		log.Printf("⚠️  Summary report rejected facility=%s period=%s: %v", facilityID, period, err)
		return nil, err
	}

	row := models.NewSummaryMonthlyReport(companyID, computed)
	row.GeneratedBy = req.GeneratedBy
	if err := s.store.CreateSummaryReport(ctx, row); err != nil {
		log.Printf("❌ Failed to save summary report facility=%s period=%s: %v", facilityID, period, err)
		return nil, err
	}

	log.Printf("✅ Summary report %s saved facility=%s period=%s status=%s",
		row.ID, facilityID, period, row.ComplianceStatus)
	return row, nil
}

// GetDetailedReport returns a stored report of the company. A report of
// another company is reported as missing.
func (s *IrrigationReportService) GetDetailedReport(ctx context.Context, companyID, id uuid.UUID) (*models.DetailedMonthlyReport, error) {
	r, err := s.store.GetDetailedReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CompanyID != companyID {
		return nil, reporting.NotFoundError("detailed report", id)
	}
	return r, nil
}

func (s *IrrigationReportService) GetSummaryReport(ctx context.Context, companyID, id uuid.UUID) (*models.SummaryMonthlyReport, error) {
	r, err := s.store.GetSummaryReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CompanyID != companyID {
		return nil, reporting.NotFoundError("summary report", id)
	}
	return r, nil
}

// ListSummaryReports lists the company's summaries, newest first,
// optionally for a single facility.
func (s *IrrigationReportService) ListSummaryReports(ctx context.Context, companyID uuid.UUID, facilityID *uuid.UUID) ([]models.SummaryMonthlyReport, error) {
	if facilityID != nil {
		if _, err := s.ownedFacility(ctx, companyID, *facilityID); err != nil {
			return nil, err
		}
	}
	return s.store.ListSummaryReports(ctx, companyID, facilityID)
}
