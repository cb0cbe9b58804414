package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type summaryFixture struct {
	facility uuid.UUID
	north    SprayField
	south    SprayField
	input    SummaryReportInput
}

func newSummaryFixture() summaryFixture {
	facility := uuid.New()
	north := SprayField{
		ID:                    uuid.New(),
		FacilityID:            facility,
		Name:                  "North",
		Acres:                 dec("3"),
		HydraulicLimitPerYear: dec("24"),
		Crop:                  &Crop{Name: "Bermuda", NitrogenUptake: dec("200"), PANFactor: dec("0.5")},
	}
	south := SprayField{
		ID:                    uuid.New(),
		FacilityID:            facility,
		Name:                  "South",
		Acres:                 dec("1"),
		HydraulicLimitPerYear: dec("48"),
	}

	on := func(field SprayField, day int, gallons, weather string) IrrigationEvent {
		ev := event(day, NewTimeOfDay(8, 0), NewTimeOfDay(10, 0), gallons)
		ev.FacilityID = facility
		ev.SprayfieldID = field.ID
		ev.Weather = weather
		return ev
	}

	return summaryFixture{
		facility: facility,
		north:    north,
		south:    south,
		input: SummaryReportInput{
			FacilityID: facility,
			Period:     Period{Year: 2024, Month: 2},
			Fields:     []SprayField{north, south},
			Events: []IrrigationEvent{
				on(north, 2, "54304", "Sunny"),
				on(south, 9, "27152", "Cloudy"),
				on(north, 15, "27152", " Sunny "),
			},
			Samples: []WaterQualitySample{
				{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AmmoniaNitrogen: decimal.NewNullDecimal(dec("10"))},
				{Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), AmmoniaNitrogen: decimal.NewNullDecimal(dec("20"))},
				{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), AmmoniaNitrogen: decimal.NewNullDecimal(dec("500"))},
				{Date: time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func TestBuildSummaryReport_Figures(t *testing.T) {
	fx := newSummaryFixture()
	r, err := DefaultEngine().BuildSummaryReport(fx.input)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}

	checks := []struct {
		label    string
		got      decimal.Decimal
		expected string
	}{
		{"TotalVolumeApplied", r.TotalVolumeApplied, "108608"},
		// 108608 / (4 acres × 27152)
		{"TotalApplicationRate", r.TotalApplicationRate, "1"},
		{"HydraulicLoadingRate", r.HydraulicLoadingRate, "12"},
		// (3 × 24/12 + 1 × 48/12) / 4 = 2.5 per month
		{"HydraulicLoadingLimit", r.HydraulicLoadingLimit, "30"},
		{"ApplicationEfficiency", r.ApplicationEfficiency, "40"},
		// 3 × 200 × 0.5 over the 3 cropped acres
		{"PANUptakeRate", r.PANUptakeRate, "100"},
		// 108608 gal × 15 mg/L × 8.34e-6 / 4 acres × 12
		{"NitrogenLoadingRate", r.NitrogenLoadingRate, "40.7605824"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.expected)) {
			t.Errorf("%s = %s, expected %s", c.label, c.got, c.expected)
		}
	}

	if r.EventCount != 3 {
		t.Errorf("EventCount = %d, expected 3", r.EventCount)
	}
	if r.WeatherSummary != "Sunny, Cloudy" {
		t.Errorf("WeatherSummary = %q, expected %q", r.WeatherSummary, "Sunny, Cloudy")
	}
	if r.Status != StatusNonCompliant {
		t.Errorf("Status = %s, expected %s (efficiency below floor)", r.Status, StatusNonCompliant)
	}
}

func TestBuildSummaryReport_NoEvents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*summaryFixture)
	}{
		{"no events at all", func(fx *summaryFixture) { fx.input.Events = nil }},
		{"events only in another month", func(fx *summaryFixture) { fx.input.Period = Period{2024, 3} }},
		{"events only for another facility", func(fx *summaryFixture) { fx.input.FacilityID = uuid.New() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newSummaryFixture()
			tt.mutate(&fx)
			r, err := DefaultEngine().BuildSummaryReport(fx.input)
			if !errors.Is(err, ErrNoIrrigationActivity) {
				t.Fatalf("error = %v, expected ErrNoIrrigationActivity", err)
			}
			if !errors.Is(err, ErrBusinessRule) {
				t.Errorf("error %v does not wrap ErrBusinessRule", err)
			}
			if r != nil {
				t.Error("a report was returned alongside the error")
			}
		})
	}
}

func TestBuildSummaryReport_Guards(t *testing.T) {
	t.Run("no acreage", func(t *testing.T) {
		fx := newSummaryFixture()
		fx.input.Fields = nil
		r, err := DefaultEngine().BuildSummaryReport(fx.input)
		if err != nil {
			t.Fatalf("BuildSummaryReport: %v", err)
		}
		for label, v := range map[string]decimal.Decimal{
			"TotalApplicationRate":  r.TotalApplicationRate,
			"NitrogenLoadingRate":   r.NitrogenLoadingRate,
			"PANUptakeRate":         r.PANUptakeRate,
			"ApplicationEfficiency": r.ApplicationEfficiency,
		} {
			if !v.IsZero() {
				t.Errorf("%s = %s, expected 0", label, v)
			}
		}
		if !r.TotalVolumeApplied.Equal(dec("108608")) {
			t.Errorf("TotalVolumeApplied = %s, expected 108608", r.TotalVolumeApplied)
		}
	})

	t.Run("no samples", func(t *testing.T) {
		fx := newSummaryFixture()
		fx.input.Samples = nil
		r, err := DefaultEngine().BuildSummaryReport(fx.input)
		if err != nil {
			t.Fatalf("BuildSummaryReport: %v", err)
		}
		if !r.NitrogenLoadingRate.IsZero() {
			t.Errorf("NitrogenLoadingRate = %s, expected 0", r.NitrogenLoadingRate)
		}
	})

	t.Run("zero target rate", func(t *testing.T) {
		fx := newSummaryFixture()
		for i := range fx.input.Fields {
			fx.input.Fields[i].HydraulicLimitPerYear = decimal.Zero
		}
		r, err := DefaultEngine().BuildSummaryReport(fx.input)
		if err != nil {
			t.Fatalf("BuildSummaryReport: %v", err)
		}
		if !r.ApplicationEfficiency.IsZero() {
			t.Errorf("ApplicationEfficiency = %s, expected 0", r.ApplicationEfficiency)
		}
	})
}

func TestBuildSummaryReport_EfficiencyCappedAt100(t *testing.T) {
	fx := newSummaryFixture()
	// target becomes 0.5 inch per month against an application of 1 inch
	fx.input.Fields[0].HydraulicLimitPerYear = dec("6")
	fx.input.Fields[1].HydraulicLimitPerYear = dec("6")

	r, err := DefaultEngine().BuildSummaryReport(fx.input)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}
	if !r.ApplicationEfficiency.Equal(dec("100")) {
		t.Errorf("ApplicationEfficiency = %s, expected 100", r.ApplicationEfficiency)
	}
	if r.Status != StatusNonCompliant {
		t.Errorf("Status = %s, expected %s (12 in/yr over a 6 in/yr limit)", r.Status, StatusNonCompliant)
	}
}

func TestBuildSummaryReport_Compliant(t *testing.T) {
	fx := newSummaryFixture()
	// monthly target 1.25 inch: efficiency 80%, limit 15 in/yr against 12
	fx.input.Fields[0].HydraulicLimitPerYear = dec("15")
	fx.input.Fields[1].HydraulicLimitPerYear = dec("15")

	r, err := DefaultEngine().BuildSummaryReport(fx.input)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}
	if !r.ApplicationEfficiency.Equal(dec("80")) {
		t.Errorf("ApplicationEfficiency = %s, expected 80", r.ApplicationEfficiency)
	}
	if r.Status != StatusCompliant {
		t.Errorf("Status = %s, expected %s", r.Status, StatusCompliant)
	}
}

func TestBuildSummaryReport_WeatherCap(t *testing.T) {
	fx := newSummaryFixture()
	conditions := []string{"Rain", "", "Fog", "Rain", "Wind", "Snow", "Hail", "Sleet", "Clear"}
	fx.input.Events = nil
	for i, w := range conditions {
		ev := event(len(conditions)-i, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), "100")
		ev.FacilityID = fx.facility
		ev.SprayfieldID = fx.north.ID
		ev.Weather = w
		fx.input.Events = append(fx.input.Events, ev)
	}

	r, err := DefaultEngine().BuildSummaryReport(fx.input)
	if err != nil {
		t.Fatalf("BuildSummaryReport: %v", err)
	}
	// events are read chronologically, so the last listed is the first seen
	expected := []string{"Clear", "Sleet", "Hail", "Snow", "Wind"}
	if len(r.WeatherConditions) != MaxWeatherConditions {
		t.Fatalf("WeatherConditions = %v, expected %d entries", r.WeatherConditions, MaxWeatherConditions)
	}
	for i, w := range expected {
		if r.WeatherConditions[i] != w {
			t.Errorf("WeatherConditions[%d] = %q, expected %q", i, r.WeatherConditions[i], w)
		}
	}
}

func TestAverageAmmonia(t *testing.T) {
	fx := newSummaryFixture()
	avg := AverageAmmonia(fx.input.Period, fx.input.Samples)
	if !avg.Valid || !avg.Decimal.Equal(dec("15")) {
		t.Errorf("AverageAmmonia = %v, expected 15", avg.Decimal)
	}
	if AverageAmmonia(Period{2023, 7}, fx.input.Samples).Valid {
		t.Error("AverageAmmonia for a month without samples reported a value")
	}
}
