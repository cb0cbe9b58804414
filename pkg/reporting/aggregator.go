package reporting

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailedReportInput is everything the detailed report needs, already
// fetched into memory by the caller.
type DetailedReportInput struct {
	FacilityID uuid.UUID
	Period     Period
	// Fields lists the report's sprayfield slots in order; a nil entry
	// leaves that slot unconfigured.
	Fields       []*SprayField
	Events       []IrrigationEvent
	Observations []DailyObservation
	// PriorReports are earlier reports of the same facility used for the
	// rolling 12-month totals.
	PriorReports []DetailedMonthlyReport
}

// BuildDetailedReport aggregates a month of irrigation and operator data
// into a detailed report with rolling totals. Input is validated before any
// output is built, so an error never comes with a partial report.
func (e *Engine) BuildDetailedReport(in DetailedReportInput) (*DetailedMonthlyReport, error) {
	if err := in.Period.Validate(); err != nil {
		return nil, err
	}
	if len(in.Fields) > MaxReportFields {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyFields, len(in.Fields))
	}
	for _, f := range in.Fields {
		if f != nil && f.FacilityID != uuid.Nil && f.FacilityID != in.FacilityID {
			return nil, fmt.Errorf("sprayfield %s: %w", f.ID, ErrOwnershipMismatch)
		}
	}

	report := &DetailedMonthlyReport{
		FacilityID:    in.FacilityID,
		Period:        in.Period,
		Weather:       NewDailySeries[string](),
		Temperature:   NewDailySeries[decimal.Decimal](),
		Precipitation: NewDailySeries[decimal.Decimal](),
		StorageLevel:  NewDailySeries[decimal.Decimal](),
		Upset:         NewDailySeries[string](),
	}
	for i := range report.Fields {
		report.Fields[i] = newFieldReport(i + 1)
	}

	byField := make(map[uuid.UUID]map[int][]IrrigationEvent)
	for _, ev := range in.Events {
		if ev.FacilityID != in.FacilityID || !in.Period.Contains(ev.Date) {
			continue
		}
		report.DidIrrigationOccur = true
		days, ok := byField[ev.SprayfieldID]
		if !ok {
			days = make(map[int][]IrrigationEvent)
			byField[ev.SprayfieldID] = days
		}
		days[ev.Date.Day()] = append(days[ev.Date.Day()], ev)
	}

	daysInMonth := in.Period.Days()
	for i, field := range in.Fields {
		if field == nil {
			continue
		}
		block := &report.Fields[i]
		block.SprayfieldID = field.ID
		block.SprayfieldName = field.Name
		events := byField[field.ID]
		for day := 1; day <= daysInMonth; day++ {
			fd := e.FieldDay(field.Acres, events[day])
			if !fd.Irrigated() {
				continue
			}
			block.Volume.Set(day, fd.Volume)
			block.Minutes.Set(day, fd.Minutes)
			if fd.DailyLoading.Valid {
				block.DailyLoading.Set(day, fd.DailyLoading.Decimal)
			}
			if fd.MaxHourlyLoading.Valid {
				block.MaxHourlyLoading.Set(day, fd.MaxHourlyLoading.Decimal)
			}
		}
		block.MonthlyLoading = Sum(block.DailyLoading)
		block.MaxHourlyLoadingForMonth = Max(block.MaxHourlyLoading)
	}

	fillObservations(report, in.Observations)
	ApplyFloatingTotals(report, in.PriorReports)
	return report, nil
}

// fillObservations copies the operator's daily records into the shared
// series. When several records share a date the latest-dated one wins.
func fillObservations(report *DetailedMonthlyReport, observations []DailyObservation) {
	sorted := make([]DailyObservation, 0, len(observations))
	for _, obs := range observations {
		if report.Period.Contains(obs.Date) {
			sorted = append(sorted, obs)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for _, obs := range sorted {
		day := obs.Date.Day()
		if obs.Weather != "" {
			report.Weather.Set(day, obs.Weather)
		}
		if obs.Temperature.Valid {
			report.Temperature.Set(day, obs.Temperature.Decimal)
		}
		if obs.Precipitation.Valid {
			report.Precipitation.Set(day, obs.Precipitation.Decimal)
		}
		if obs.StorageLevel.Valid {
			report.StorageLevel.Set(day, obs.StorageLevel.Decimal)
		}
		if obs.Upset != "" {
			report.Upset.Set(day, obs.Upset)
		}
	}
}
