package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"p9e.in/landapp/pkg/reporting"
)

// IrrigationLog is one irrigation run recorded by an operator.
type IrrigationLog struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_irrigation_logs_facility_date" json:"facilityId"`
	SprayfieldID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sprayfieldId"`
	Date         time.Time       `gorm:"type:date;not null;index:idx_irrigation_logs_facility_date" json:"date"`
	StartTime    ClockTime       `gorm:"not null" json:"startTime"`
	EndTime      ClockTime       `gorm:"not null" json:"endTime"`
	Gallons      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"gallons"`
	FlowRate     decimal.Decimal `gorm:"type:numeric(10,2)" json:"flowRate"` // gallons / minute
	Weather      string          `gorm:"size:100" json:"weather,omitempty"`
	Operator     string          `gorm:"size:100" json:"operator,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (l *IrrigationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

func (l IrrigationLog) ToReporting() reporting.IrrigationEvent {
	return reporting.IrrigationEvent{
		ID:           l.ID,
		FacilityID:   l.FacilityID,
		SprayfieldID: l.SprayfieldID,
		Date:         l.Date,
		Start:        l.StartTime.TimeOfDay(),
		End:          l.EndTime.TimeOfDay(),
		Gallons:      l.Gallons,
		FlowRate:     l.FlowRate,
		Weather:      l.Weather,
	}
}

// OperatorLog is the operator's daily facility walk-through.
type OperatorLog struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_operator_logs_facility_date" json:"facilityId"`
	Date          time.Time           `gorm:"type:date;not null;index:idx_operator_logs_facility_date" json:"date"`
	Weather       string              `gorm:"size:100" json:"weather,omitempty"`
	Temperature   decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"temperature"`   // °F
	Precipitation decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"precipitation"` // inches
	StorageLevel  decimal.NullDecimal `gorm:"type:numeric(8,2)" json:"storageLevel"`  // feet of freeboard
	Upset         string              `gorm:"type:text" json:"upset,omitempty"`
	Operator      string              `gorm:"size:100" json:"operator,omitempty"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (l *OperatorLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

func (l OperatorLog) ToReporting() reporting.DailyObservation {
	return reporting.DailyObservation{
		Date:          l.Date,
		Weather:       l.Weather,
		Temperature:   l.Temperature,
		Precipitation: l.Precipitation,
		StorageLevel:  l.StorageLevel,
		Upset:         l.Upset,
	}
}

// WastewaterSample is a lab result for the effluent applied to the fields.
type WastewaterSample struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_wastewater_samples_facility_date" json:"facilityId"`
	Date            time.Time           `gorm:"type:date;not null;index:idx_wastewater_samples_facility_date" json:"date"`
	AmmoniaNitrogen decimal.NullDecimal `gorm:"type:numeric(10,3)" json:"ammoniaNitrogen"` // mg/L
	Nitrate         decimal.NullDecimal `gorm:"type:numeric(10,3)" json:"nitrate"`         // mg/L
	TKN             decimal.NullDecimal `gorm:"column:tkn;type:numeric(10,3)" json:"tkn"`  // mg/L
	Laboratory      string              `gorm:"size:150" json:"laboratory,omitempty"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s *WastewaterSample) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s WastewaterSample) ToReporting() reporting.WaterQualitySample {
	return reporting.WaterQualitySample{Date: s.Date, AmmoniaNitrogen: s.AmmoniaNitrogen}
}
