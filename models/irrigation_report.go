package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"p9e.in/landapp/pkg/reporting"
)

type (
	decimalSeriesColumn = datatypes.JSONType[reporting.DecimalSeries]
	minutesSeriesColumn = datatypes.JSONType[reporting.DailySeries[int]]
	textSeriesColumn    = datatypes.JSONType[reporting.DailySeries[string]]
)

// DetailedMonthlyReport is the stored per-day compliance report. One row
// per facility and month; the unique index rejects a second generation.
type DetailedMonthlyReport struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID          uuid.UUID            `gorm:"type:uuid;not null;index" json:"companyId"`
	FacilityID         uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_detailed_reports_facility_period" json:"facilityId"`
	Year               int                  `gorm:"not null;uniqueIndex:idx_detailed_reports_facility_period" json:"year"`
	Month              int                  `gorm:"not null;uniqueIndex:idx_detailed_reports_facility_period" json:"month"`
	DidIrrigationOccur bool                 `gorm:"not null;default:false" json:"didIrrigationOccur"`
	Weather            textSeriesColumn     `gorm:"type:jsonb" json:"weather"`
	Temperature        decimalSeriesColumn  `gorm:"type:jsonb" json:"temperature"`
	Precipitation      decimalSeriesColumn  `gorm:"type:jsonb" json:"precipitation"`
	StorageLevel       decimalSeriesColumn  `gorm:"type:jsonb" json:"storageLevel"`
	Upset              textSeriesColumn     `gorm:"type:jsonb" json:"upset"`
	Fields             []MonthlyFieldReport `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"fields"`
	GeneratedBy        string               `gorm:"size:100" json:"generatedBy,omitempty"`
	CreatedAt          time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

// MonthlyFieldReport is one configured sprayfield block of a detailed report.
type MonthlyFieldReport struct {
	ID                       uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID                 uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_field_reports_report_slot" json:"reportId"`
	Slot                     int                 `gorm:"not null;uniqueIndex:idx_field_reports_report_slot" json:"slot"`
	SprayfieldID             uuid.UUID           `gorm:"type:uuid;not null;index" json:"sprayfieldId"`
	SprayfieldName           string              `gorm:"size:100" json:"sprayfieldName"`
	Volume                   decimalSeriesColumn `gorm:"type:jsonb" json:"volume"`
	Minutes                  minutesSeriesColumn `gorm:"type:jsonb" json:"minutes"`
	DailyLoading             decimalSeriesColumn `gorm:"type:jsonb" json:"dailyLoading"`
	MaxHourlyLoading         decimalSeriesColumn `gorm:"type:jsonb" json:"maxHourlyLoading"`
	MonthlyLoading           decimal.Decimal     `gorm:"type:numeric(12,4);not null;default:0" json:"monthlyLoading"`
	MaxHourlyLoadingForMonth decimal.Decimal     `gorm:"type:numeric(12,4);not null;default:0" json:"maxHourlyLoadingForMonth"`
	FloatingTotal            decimal.Decimal     `gorm:"type:numeric(12,4);not null;default:0" json:"floatingTotal"`
}

// SummaryMonthlyReport is the stored facility-level irrigation summary.
type SummaryMonthlyReport struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"companyId"`
	FacilityID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_summary_reports_facility_period" json:"facilityId"`
	Year                  int              `gorm:"not null;uniqueIndex:idx_summary_reports_facility_period" json:"year"`
	Month                 int              `gorm:"not null;uniqueIndex:idx_summary_reports_facility_period" json:"month"`
	TotalVolumeApplied    decimal.Decimal  `gorm:"type:numeric(16,2);not null" json:"totalVolumeApplied"`
	TotalApplicationRate  decimal.Decimal  `gorm:"type:numeric(12,4);not null" json:"totalApplicationRate"`
	HydraulicLoadingRate  decimal.Decimal  `gorm:"type:numeric(12,4);not null" json:"hydraulicLoadingRate"`
	HydraulicLoadingLimit decimal.Decimal  `gorm:"type:numeric(12,4);not null" json:"hydraulicLoadingLimit"`
	NitrogenLoadingRate   decimal.Decimal  `gorm:"type:numeric(12,4);not null" json:"nitrogenLoadingRate"`
	PANUptakeRate         decimal.Decimal  `gorm:"column:pan_uptake_rate;type:numeric(12,4);not null" json:"panUptakeRate"`
	ApplicationEfficiency decimal.Decimal  `gorm:"type:numeric(7,2);not null" json:"applicationEfficiency"`
	WeatherConditions     pq.StringArray   `gorm:"type:text[]" json:"weatherConditions"`
	WeatherSummary        string           `gorm:"size:500" json:"weatherSummary"`
	EventCount            int              `gorm:"not null" json:"eventCount"`
	ComplianceStatus      string           `gorm:"size:20;not null;index" json:"complianceStatus"`
	GeneratedBy           string           `gorm:"size:100" json:"generatedBy,omitempty"`
	CreatedAt             time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *DetailedMonthlyReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (f *MonthlyFieldReport) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

func (r *SummaryMonthlyReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (r *DetailedMonthlyReport) Period() reporting.Period {
	return reporting.Period{Year: r.Year, Month: r.Month}
}

func (r *SummaryMonthlyReport) Period() reporting.Period {
	return reporting.Period{Year: r.Year, Month: r.Month}
}

// NewDetailedMonthlyReport maps a computed report onto its table rows.
// Unconfigured slots are not stored.
func NewDetailedMonthlyReport(companyID uuid.UUID, r *reporting.DetailedMonthlyReport) *DetailedMonthlyReport {
	row := &DetailedMonthlyReport{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		FacilityID:         r.FacilityID,
		Year:               r.Period.Year,
		Month:              r.Period.Month,
		DidIrrigationOccur: r.DidIrrigationOccur,
		Weather:            datatypes.NewJSONType(r.Weather),
		Temperature:        datatypes.NewJSONType(r.Temperature),
		Precipitation:      datatypes.NewJSONType(r.Precipitation),
		StorageLevel:       datatypes.NewJSONType(r.StorageLevel),
		Upset:              datatypes.NewJSONType(r.Upset),
	}
	for _, f := range r.Fields {
		if !f.Configured() {
			continue
		}
		row.Fields = append(row.Fields, MonthlyFieldReport{
			ID:                       uuid.New(),
			ReportID:                 row.ID,
			Slot:                     f.Slot,
			SprayfieldID:             f.SprayfieldID,
			SprayfieldName:           f.SprayfieldName,
			Volume:                   datatypes.NewJSONType(f.Volume),
			Minutes:                  datatypes.NewJSONType(f.Minutes),
			DailyLoading:             datatypes.NewJSONType(f.DailyLoading),
			MaxHourlyLoading:         datatypes.NewJSONType(f.MaxHourlyLoading),
			MonthlyLoading:           f.MonthlyLoading,
			MaxHourlyLoadingForMonth: f.MaxHourlyLoadingForMonth,
			FloatingTotal:            f.FloatingTotal,
		})
	}
	return row
}

// ToReporting rebuilds the engine value, restoring all four slots.
func (r *DetailedMonthlyReport) ToReporting() reporting.DetailedMonthlyReport {
	out := reporting.DetailedMonthlyReport{
		FacilityID:         r.FacilityID,
		Period:             r.Period(),
		DidIrrigationOccur: r.DidIrrigationOccur,
		Weather:            r.Weather.Data(),
		Temperature:        r.Temperature.Data(),
		Precipitation:      r.Precipitation.Data(),
		StorageLevel:       r.StorageLevel.Data(),
		Upset:              r.Upset.Data(),
	}
	out.Weather.EnsureInitialized()
	out.Temperature.EnsureInitialized()
	out.Precipitation.EnsureInitialized()
	out.StorageLevel.EnsureInitialized()
	out.Upset.EnsureInitialized()

	for i := range out.Fields {
		out.Fields[i] = reporting.MonthlyFieldReport{
			Slot:             i + 1,
			Volume:           reporting.NewDailySeries[decimal.Decimal](),
			Minutes:          reporting.NewDailySeries[int](),
			DailyLoading:     reporting.NewDailySeries[decimal.Decimal](),
			MaxHourlyLoading: reporting.NewDailySeries[decimal.Decimal](),
		}
	}
	for _, f := range r.Fields {
		if f.Slot < 1 || f.Slot > reporting.MaxReportFields {
			continue
		}
		field := reporting.MonthlyFieldReport{
			Slot:                     f.Slot,
			SprayfieldID:             f.SprayfieldID,
			SprayfieldName:           f.SprayfieldName,
			Volume:                   f.Volume.Data(),
			Minutes:                  f.Minutes.Data(),
			DailyLoading:             f.DailyLoading.Data(),
			MaxHourlyLoading:         f.MaxHourlyLoading.Data(),
			MonthlyLoading:           f.MonthlyLoading,
			MaxHourlyLoadingForMonth: f.MaxHourlyLoadingForMonth,
			FloatingTotal:            f.FloatingTotal,
		}
		field.Volume.EnsureInitialized()
		field.Minutes.EnsureInitialized()
		field.DailyLoading.EnsureInitialized()
		field.MaxHourlyLoading.EnsureInitialized()
		out.Fields[f.Slot-1] = field
	}
	return out
}

// NewSummaryMonthlyReport maps a computed summary onto its table row.
func NewSummaryMonthlyReport(companyID uuid.UUID, r *reporting.SummaryMonthlyReport) *SummaryMonthlyReport {
	return &SummaryMonthlyReport{
		ID:                    uuid.New(),
		CompanyID:             companyID,
		FacilityID:            r.FacilityID,
		Year:                  r.Period.Year,
		Month:                 r.Period.Month,
		TotalVolumeApplied:    r.TotalVolumeApplied,
		TotalApplicationRate:  r.TotalApplicationRate,
		HydraulicLoadingRate:  r.HydraulicLoadingRate,
		HydraulicLoadingLimit: r.HydraulicLoadingLimit,
		NitrogenLoadingRate:   r.NitrogenLoadingRate,
		PANUptakeRate:         r.PANUptakeRate,
		ApplicationEfficiency: r.ApplicationEfficiency,
		WeatherConditions:     pq.StringArray(r.WeatherConditions),
		WeatherSummary:        r.WeatherSummary,
		EventCount:            r.EventCount,
		ComplianceStatus:      string(r.Status),
	}
}
