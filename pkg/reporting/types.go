// Package reporting turns daily irrigation and operator records into monthly
// land-application compliance reports.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxReportFields is the number of sprayfield blocks on a detailed report.
const MaxReportFields = 4

// TimeOfDay is a wall-clock time expressed as minutes after midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MinutesBetween returns the length of a run from start to end. An end
// earlier than the start is an overnight run that crossed midnight.
func MinutesBetween(start, end TimeOfDay) int {
	if end < start {
		end += minutesPerDay
	}
	return int(end - start)
}

// Crop carries the agronomic rates used by the summary report.
type Crop struct {
	Name           string          `json:"name"`
	NitrogenUptake decimal.Decimal `json:"nitrogenUptake"` // lbs N / acre / year
	PANFactor      decimal.Decimal `json:"panFactor"`
}

// SprayField is the engine's read-only view of one sprayfield.
type SprayField struct {
	ID                    uuid.UUID       `json:"id"`
	FacilityID            uuid.UUID       `json:"facilityId"`
	Name                  string          `json:"name"`
	Acres                 decimal.Decimal `json:"acres"`
	HydraulicLimitPerYear decimal.Decimal `json:"hydraulicLimitPerYear"` // inches / year
	Crop                  *Crop           `json:"crop,omitempty"`
}

// IrrigationEvent is one logged irrigation run on a sprayfield.
type IrrigationEvent struct {
	ID           uuid.UUID       `json:"id"`
	FacilityID   uuid.UUID       `json:"facilityId"`
	SprayfieldID uuid.UUID       `json:"sprayfieldId"`
	Date         time.Time       `json:"date"`
	Start        TimeOfDay       `json:"start"`
	End          TimeOfDay       `json:"end"`
	Gallons      decimal.Decimal `json:"gallons"`
	FlowRate     decimal.Decimal `json:"flowRate"`
	Weather      string          `json:"weather,omitempty"`
}

// Minutes is the duration of the run, wrapping midnight when needed.
func (e IrrigationEvent) Minutes() int {
	return MinutesBetween(e.Start, e.End)
}

// DailyObservation is the operator's once-a-day record for a facility.
type DailyObservation struct {
	Date          time.Time           `json:"date"`
	Weather       string              `json:"weather,omitempty"`
	Temperature   decimal.NullDecimal `json:"temperature"`
	Precipitation decimal.NullDecimal `json:"precipitation"`
	StorageLevel  decimal.NullDecimal `json:"storageLevel"`
	Upset         string              `json:"upset,omitempty"`
}

// WaterQualitySample is a wastewater characteristic measurement.
type WaterQualitySample struct {
	Date            time.Time           `json:"date"`
	AmmoniaNitrogen decimal.NullDecimal `json:"ammoniaNitrogen"` // mg/L
}

// ComplianceStatus is derived from a report's loading figures.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "Compliant"
	StatusUnderReview  ComplianceStatus = "UnderReview"
	StatusNonCompliant ComplianceStatus = "NonCompliant"
)

// MonthlyFieldReport is one sprayfield block of a detailed report.
type MonthlyFieldReport struct {
	Slot                     int              `json:"slot"`
	SprayfieldID             uuid.UUID        `json:"sprayfieldId"`
	SprayfieldName           string           `json:"sprayfieldName,omitempty"`
	Volume                   DecimalSeries    `json:"volume"`
	Minutes                  DailySeries[int] `json:"minutes"`
	DailyLoading             DecimalSeries    `json:"dailyLoading"`
	MaxHourlyLoading         DecimalSeries    `json:"maxHourlyLoading"`
	MonthlyLoading           decimal.Decimal  `json:"monthlyLoading"`
	MaxHourlyLoadingForMonth decimal.Decimal  `json:"maxHourlyLoadingForMonth"`
	FloatingTotal            decimal.Decimal  `json:"floatingTotal"`
}

// Configured reports whether a sprayfield occupies this slot.
func (f MonthlyFieldReport) Configured() bool {
	return f.SprayfieldID != uuid.Nil
}

func newFieldReport(slot int) MonthlyFieldReport {
	return MonthlyFieldReport{
		Slot:             slot,
		Volume:           NewDailySeries[decimal.Decimal](),
		Minutes:          NewDailySeries[int](),
		DailyLoading:     NewDailySeries[decimal.Decimal](),
		MaxHourlyLoading: NewDailySeries[decimal.Decimal](),
	}
}

// DetailedMonthlyReport is the per-day, per-field compliance report.
type DetailedMonthlyReport struct {
	FacilityID         uuid.UUID                           `json:"facilityId"`
	Period             Period                              `json:"period"`
	DidIrrigationOccur bool                                `json:"didIrrigationOccur"`
	Weather            DailySeries[string]                 `json:"weather"`
	Temperature        DecimalSeries                       `json:"temperature"`
	Precipitation      DecimalSeries                       `json:"precipitation"`
	StorageLevel       DecimalSeries                       `json:"storageLevel"`
	Upset              DailySeries[string]                 `json:"upset"`
	Fields             [MaxReportFields]MonthlyFieldReport `json:"fields"`
}

// SummaryMonthlyReport is the facility-level irrigation summary.
type SummaryMonthlyReport struct {
	FacilityID            uuid.UUID        `json:"facilityId"`
	Period                Period           `json:"period"`
	TotalVolumeApplied    decimal.Decimal  `json:"totalVolumeApplied"`
	TotalApplicationRate  decimal.Decimal  `json:"totalApplicationRate"`
	HydraulicLoadingRate  decimal.Decimal  `json:"hydraulicLoadingRate"`
	HydraulicLoadingLimit decimal.Decimal  `json:"hydraulicLoadingLimit"`
	NitrogenLoadingRate   decimal.Decimal  `json:"nitrogenLoadingRate"`
	PANUptakeRate         decimal.Decimal  `json:"panUptakeRate"`
	ApplicationEfficiency decimal.Decimal  `json:"applicationEfficiency"`
	WeatherConditions     []string         `json:"weatherConditions"`
	WeatherSummary        string           `json:"weatherSummary"`
	EventCount            int              `json:"eventCount"`
	Status                ComplianceStatus `json:"status"`
}
