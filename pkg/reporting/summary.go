package reporting

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxWeatherConditions caps the distinct weather strings on a summary.
const MaxWeatherConditions = 5

var (
	monthsPerYear  = decimal.NewFromInt(12)
	hundred        = decimal.NewFromInt(100)
	poundsPerMgGal = decimal.RequireFromString("0.00000834") // 8.34 lbs per gallon per (mg/L) / 1e6
)

// SummaryReportInput is a month of facility data for the irrigation summary.
type SummaryReportInput struct {
	FacilityID uuid.UUID
	Period     Period
	Fields     []SprayField
	Events     []IrrigationEvent
	Samples    []WaterQualitySample
}

// BuildSummaryReport rolls a month of irrigation events into the
// facility-level summary and classifies it. A period without any
// irrigation event is rejected with ErrNoIrrigationActivity.
func (e *Engine) BuildSummaryReport(in SummaryReportInput) (*SummaryMonthlyReport, error) {
	if err := in.Period.Validate(); err != nil {
		return nil, err
	}

	events := make([]IrrigationEvent, 0, len(in.Events))
	for _, ev := range in.Events {
		if ev.FacilityID == in.FacilityID && in.Period.Contains(ev.Date) {
			events = append(events, ev)
		}
	}
	if len(events) == 0 {
		return nil, ErrNoIrrigationActivity
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Start < events[j].Start
	})

	r := &SummaryMonthlyReport{
		FacilityID: in.FacilityID,
		Period:     in.Period,
		EventCount: len(events),
	}
	for _, ev := range events {
		r.TotalVolumeApplied = r.TotalVolumeApplied.Add(ev.Gallons)
	}

	acres := totalAcres(in.Fields)
	if acres.IsPositive() {
		r.TotalApplicationRate = r.TotalVolumeApplied.Div(acres.Mul(e.gallonsPerAcreInch))
	}
	r.HydraulicLoadingRate = r.TotalApplicationRate.Mul(monthsPerYear)
	r.NitrogenLoadingRate = nitrogenLoadingRate(r.TotalVolumeApplied, acres, in.Period, in.Samples)
	r.PANUptakeRate = panUptakeRate(in.Fields)

	target := monthlyTargetRate(in.Fields)
	r.HydraulicLoadingLimit = target.Mul(monthsPerYear)
	if target.IsPositive() {
		r.ApplicationEfficiency = decimal.Min(hundred, r.TotalApplicationRate.Div(target).Mul(hundred))
	}

	r.WeatherConditions = weatherConditions(events)
	r.WeatherSummary = strings.Join(r.WeatherConditions, ", ")
	r.Status = Classify(r.HydraulicLoadingRate, r.HydraulicLoadingLimit, r.ApplicationEfficiency)
	return r, nil
}

func totalAcres(fields []SprayField) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fields {
		if f.Acres.IsPositive() {
			total = total.Add(f.Acres)
		}
	}
	return total
}

// AverageAmmonia averages the ammonia-nitrogen readings taken in the period.
func AverageAmmonia(period Period, samples []WaterQualitySample) decimal.NullDecimal {
	sum, n := decimal.Zero, int64(0)
	for _, s := range samples {
		if s.AmmoniaNitrogen.Valid && period.Contains(s.Date) {
			sum = sum.Add(s.AmmoniaNitrogen.Decimal)
			n++
		}
	}
	if n == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(n)))
}

// nitrogenLoadingRate is annualized pounds of nitrogen per acre.
func nitrogenLoadingRate(gallons, acres decimal.Decimal, period Period, samples []WaterQualitySample) decimal.Decimal {
	avg := AverageAmmonia(period, samples)
	if !avg.Valid || !acres.IsPositive() {
		return decimal.Zero
	}
	pounds := gallons.Mul(avg.Decimal).Mul(poundsPerMgGal)
	return pounds.Div(acres).Mul(monthsPerYear)
}

// panUptakeRate is the acreage-weighted crop uptake × PAN factor.
func panUptakeRate(fields []SprayField) decimal.Decimal {
	weighted, acres := decimal.Zero, decimal.Zero
	for _, f := range fields {
		if f.Crop == nil || !f.Acres.IsPositive() {
			continue
		}
		weighted = weighted.Add(f.Acres.Mul(f.Crop.NitrogenUptake).Mul(f.Crop.PANFactor))
		acres = acres.Add(f.Acres)
	}
	if acres.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(acres)
}

// monthlyTargetRate is the acreage-weighted monthly share of each field's
// annual hydraulic loading limit.
func monthlyTargetRate(fields []SprayField) decimal.Decimal {
	weighted, acres := decimal.Zero, decimal.Zero
	for _, f := range fields {
		if !f.Acres.IsPositive() {
			continue
		}
		weighted = weighted.Add(f.Acres.Mul(f.HydraulicLimitPerYear.Div(monthsPerYear)))
		acres = acres.Add(f.Acres)
	}
	if acres.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(acres)
}

func weatherConditions(events []IrrigationEvent) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, MaxWeatherConditions)
	for _, ev := range events {
		w := strings.TrimSpace(ev.Weather)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == MaxWeatherConditions {
			break
		}
	}
	return out
}
