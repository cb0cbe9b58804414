package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/landapp/config"
	"p9e.in/landapp/models"
	"p9e.in/landapp/pkg/reporting"
)

// ReportStore is everything report generation reads and writes. Each
// method returns plain rows; no method computes report figures.
type ReportStore interface {
	GetFacility(ctx context.Context, id uuid.UUID) (*models.Facility, error)
	ListSprayfields(ctx context.Context, facilityID uuid.UUID) ([]models.Sprayfield, error)
	GetSprayfields(ctx context.Context, ids []uuid.UUID) ([]models.Sprayfield, error)

	ListIrrigationLogs(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.IrrigationLog, error)
	ListOperatorLogs(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.OperatorLog, error)
	ListWastewaterSamples(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.WastewaterSample, error)

	// ListDetailedReports returns the facility's reports with from <= period <= to.
	ListDetailedReports(ctx context.Context, facilityID uuid.UUID, from, to reporting.Period) ([]models.DetailedMonthlyReport, error)
	DetailedReportExists(ctx context.Context, facilityID uuid.UUID, p reporting.Period) (bool, error)
	SummaryReportExists(ctx context.Context, facilityID uuid.UUID, p reporting.Period) (bool, error)

	CreateDetailedReport(ctx context.Context, r *models.DetailedMonthlyReport) error
	CreateSummaryReport(ctx context.Context, r *models.SummaryMonthlyReport) error

	GetDetailedReport(ctx context.Context, id uuid.UUID) (*models.DetailedMonthlyReport, error)
	GetSummaryReport(ctx context.Context, id uuid.UUID) (*models.SummaryMonthlyReport, error)
	ListSummaryReports(ctx context.Context, companyID uuid.UUID, facilityID *uuid.UUID) ([]models.SummaryMonthlyReport, error)
}

// GormStore is the postgres-backed ReportStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// NewDefaultStore uses the process-wide connection.
func NewDefaultStore() *GormStore {
	return NewGormStore(config.DB)
}

func periodIndex(p reporting.Period) int {
	return p.Year*12 + p.Month
}

// translate maps gorm errors onto the reporting error classes.
func translate(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return reporting.NotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return reporting.ErrDuplicateReport
	default:
		return err
	}
}

func (s *GormStore) GetFacility(ctx context.Context, id uuid.UUID) (*models.Facility, error) {
	var f models.Facility
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err, "facility", id)
	}
	return &f, nil
}

func (s *GormStore) ListSprayfields(ctx context.Context, facilityID uuid.UUID) ([]models.Sprayfield, error) {
	var fields []models.Sprayfield
	err := s.db.WithContext(ctx).
		Preload("Crop").
		Where("facility_id = ? AND is_active = ?", facilityID, true).
		Order("name ASC").
		Find(&fields).Error
	return fields, err
}

func (s *GormStore) GetSprayfields(ctx context.Context, ids []uuid.UUID) ([]models.Sprayfield, error) {
	var fields []models.Sprayfield
	err := s.db.WithContext(ctx).
		Preload("Crop").
		Where("id IN ?", ids).
		Find(&fields).Error
	return fields, err
}

func (s *GormStore) ListIrrigationLogs(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.IrrigationLog, error) {
	var logs []models.IrrigationLog
	err := s.db.WithContext(ctx).
		Where("facility_id = ? AND date BETWEEN ? AND ?", facilityID, p.Start(), p.End()).
		Order("date ASC, start_time ASC").
		Find(&logs).Error
	return logs, err
}

func (s *GormStore) ListOperatorLogs(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.OperatorLog, error) {
	var logs []models.OperatorLog
	err := s.db.WithContext(ctx).
		Where("facility_id = ? AND date BETWEEN ? AND ?", facilityID, p.Start(), p.End()).
		Order("date ASC, updated_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *GormStore) ListWastewaterSamples(ctx context.Context, facilityID uuid.UUID, p reporting.Period) ([]models.WastewaterSample, error) {
	var samples []models.WastewaterSample
	err := s.db.WithContext(ctx).
		Where("facility_id = ? AND date BETWEEN ? AND ?", facilityID, p.Start(), p.End()).
		Order("date ASC").
		Find(&samples).Error
	return samples, err
}

func (s *GormStore) ListDetailedReports(ctx context.Context, facilityID uuid.UUID, from, to reporting.Period) ([]models.DetailedMonthlyReport, error) {
	var reports []models.DetailedMonthlyReport
	err := s.db.WithContext(ctx).
		Preload("Fields").
		Where("facility_id = ? AND (year * 12 + month) BETWEEN ? AND ?", facilityID, periodIndex(from), periodIndex(to)).
		Order("year DESC, month DESC").
		Find(&reports).Error
	return reports, err
}

func (s *GormStore) DetailedReportExists(ctx context.Context, facilityID uuid.UUID, p reporting.Period) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.DetailedMonthlyReport{}).
		Where("facility_id = ? AND year = ? AND month = ?", facilityID, p.Year, p.Month).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) SummaryReportExists(ctx context.Context, facilityID uuid.UUID, p reporting.Period) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SummaryMonthlyReport{}).
		Where("facility_id = ? AND year = ? AND month = ?", facilityID, p.Year, p.Month).
		Count(&count).Error
	return count > 0, err
}

// CreateDetailedReport stores the report and its field rows atomically.
func (s *GormStore) CreateDetailedReport(ctx context.Context, r *models.DetailedMonthlyReport) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(r).Error
	})
	return translate(err, "detailed report", r.ID)
}

func (s *GormStore) CreateSummaryReport(ctx context.Context, r *models.SummaryMonthlyReport) error {
	return translate(s.db.WithContext(ctx).Create(r).Error, "summary report", r.ID)
}

func (s *GormStore) GetDetailedReport(ctx context.Context, id uuid.UUID) (*models.DetailedMonthlyReport, error) {
	var r models.DetailedMonthlyReport
	err := s.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }).
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "detailed report", id)
	}
	return &r, nil
}

func (s *GormStore) GetSummaryReport(ctx context.Context, id uuid.UUID) (*models.SummaryMonthlyReport, error) {
	var r models.SummaryMonthlyReport
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err, "summary report", id)
	}
	return &r, nil
}

func (s *GormStore) ListSummaryReports(ctx context.Context, companyID uuid.UUID, facilityID *uuid.UUID) ([]models.SummaryMonthlyReport, error) {
	var reports []models.SummaryMonthlyReport
	q := s.db.WithContext(ctx).Where("company_id = ?", companyID)
	if facilityID != nil {
		q = q.Where("facility_id = ?", *facilityID)
	}
	err := q.Order("year DESC, month DESC").Find(&reports).Error
	return reports, err
}
