package reporting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func event(day int, start, end TimeOfDay, gallons string) IrrigationEvent {
	return IrrigationEvent{
		ID:      uuid.New(),
		Date:    time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC),
		Start:   start,
		End:     end,
		Gallons: dec(gallons),
	}
}

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    TimeOfDay
		end      TimeOfDay
		expected int
	}{
		{"same morning", NewTimeOfDay(8, 0), NewTimeOfDay(9, 30), 90},
		{"overnight run", NewTimeOfDay(23, 0), NewTimeOfDay(1, 0), 120},
		{"ends at midnight", NewTimeOfDay(22, 15), NewTimeOfDay(0, 0), 105},
		{"zero length", NewTimeOfDay(6, 0), NewTimeOfDay(6, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesBetween(tt.start, tt.end); got != tt.expected {
				t.Errorf("MinutesBetween(%s, %s) = %d, expected %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeOfDay
		wantErr  bool
	}{
		{"07:45", NewTimeOfDay(7, 45), false},
		{"23:00:59", NewTimeOfDay(23, 0), false},
		{" 00:05 ", NewTimeOfDay(0, 5), false},
		{"25:00", 0, true},
		{"noon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseTimeOfDay(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEngine_FieldDay(t *testing.T) {
	engine := DefaultEngine()

	tests := []struct {
		name              string
		acres             string
		events            []IrrigationEvent
		expectedVolume    string
		expectedMinutes   int
		expectedDaily     string // "" means no value
		expectedMaxHourly string
	}{
		{
			name:              "one acre-inch in half an hour",
			acres:             "1",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(8, 0), NewTimeOfDay(8, 30), "27152")},
			expectedVolume:    "27152",
			expectedMinutes:   30,
			expectedDaily:     "1",
			expectedMaxHourly: "1",
		},
		{
			name:              "two inches over two hours",
			acres:             "1",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(8, 0), NewTimeOfDay(10, 0), "54304")},
			expectedVolume:    "54304",
			expectedMinutes:   120,
			expectedDaily:     "2",
			expectedMaxHourly: "1",
		},
		{
			name: "events summed per day",
			acres: "2",
			events: []IrrigationEvent{
				event(1, NewTimeOfDay(6, 0), NewTimeOfDay(7, 0), "27152"),
				event(1, NewTimeOfDay(18, 0), NewTimeOfDay(21, 0), "81456"),
			},
			expectedVolume:    "108608",
			expectedMinutes:   240,
			expectedDaily:     "2",
			expectedMaxHourly: "0.5",
		},
		{
			name:              "overnight run",
			acres:             "4",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(23, 0), NewTimeOfDay(1, 0), "108608")},
			expectedVolume:    "108608",
			expectedMinutes:   120,
			expectedDaily:     "1",
			expectedMaxHourly: "0.5",
		},
		{
			name:              "zero area guards the division",
			acres:             "0",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), "1000")},
			expectedVolume:    "1000",
			expectedMinutes:   60,
			expectedDaily:     "",
			expectedMaxHourly: "",
		},
		{
			name:              "zero-gallon event",
			acres:             "3",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), "0")},
			expectedVolume:    "0",
			expectedMinutes:   60,
			expectedDaily:     "",
			expectedMaxHourly: "",
		},
		{
			name:              "volume without run time",
			acres:             "1",
			events:            []IrrigationEvent{event(1, NewTimeOfDay(8, 0), NewTimeOfDay(8, 0), "27152")},
			expectedVolume:    "27152",
			expectedMinutes:   0,
			expectedDaily:     "1",
			expectedMaxHourly: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := engine.FieldDay(dec(tt.acres), tt.events)

			if !day.Irrigated() {
				t.Fatal("Irrigated() = false for a day with events")
			}
			if !day.Volume.Equal(dec(tt.expectedVolume)) {
				t.Errorf("Volume = %s, expected %s", day.Volume, tt.expectedVolume)
			}
			if day.Minutes != tt.expectedMinutes {
				t.Errorf("Minutes = %d, expected %d", day.Minutes, tt.expectedMinutes)
			}
			checkNull(t, "DailyLoading", day.DailyLoading, tt.expectedDaily)
			checkNull(t, "MaxHourlyLoading", day.MaxHourlyLoading, tt.expectedMaxHourly)
		})
	}
}

func TestEngine_FieldDay_NoEvents(t *testing.T) {
	day := DefaultEngine().FieldDay(dec("5"), nil)
	if day.Irrigated() {
		t.Error("Irrigated() = true for a day without events")
	}
	if day.DailyLoading.Valid || day.MaxHourlyLoading.Valid {
		t.Error("loading values present for a day without events")
	}
}

func TestMaxHourlyLoading(t *testing.T) {
	daily := decimal.NewNullDecimal(dec("0.8"))

	for minutes := 1; minutes < 60; minutes++ {
		got := MaxHourlyLoading(daily, minutes)
		if !got.Valid || !got.Decimal.Equal(daily.Decimal) {
			t.Fatalf("MaxHourlyLoading(0.8, %d) = %v, expected the daily loading unchanged", minutes, got)
		}
	}
	if got := MaxHourlyLoading(decimal.NullDecimal{}, 120); got.Valid {
		t.Errorf("MaxHourlyLoading(no value, 120) = %v, expected no value", got.Decimal)
	}
	if got := MaxHourlyLoading(daily, 0); got.Valid {
		t.Errorf("MaxHourlyLoading(0.8, 0) = %v, expected no value", got.Decimal)
	}
	if got := MaxHourlyLoading(daily, 60); !got.Valid || !got.Decimal.Equal(dec("0.8")) {
		t.Errorf("MaxHourlyLoading(0.8, 60) = %v, expected 0.8", got.Decimal)
	}
}

func TestNewEngine_ConversionFactor(t *testing.T) {
	if got := DefaultEngine().GallonsPerAcreInch(); !got.Equal(decimal.NewFromInt(GallonsPerAcreInch)) {
		t.Errorf("DefaultEngine factor = %s, expected %d", got, GallonsPerAcreInch)
	}
	custom := NewEngine(dec("27154"))
	got := custom.DailyLoading(dec("27154"), dec("1"))
	if !got.Valid || !got.Decimal.Equal(dec("1")) {
		t.Errorf("custom factor DailyLoading = %v, expected 1", got.Decimal)
	}
}

func checkNull(t *testing.T, label string, got decimal.NullDecimal, expected string) {
	t.Helper()
	if expected == "" {
		if got.Valid {
			t.Errorf("%s = %s, expected no value", label, got.Decimal)
		}
		return
	}
	if !got.Valid {
		t.Errorf("%s = no value, expected %s", label, expected)
		return
	}
	if !got.Decimal.Equal(dec(expected)) {
		t.Errorf("%s = %s, expected %s", label, got.Decimal, expected)
	}
}

func BenchmarkEngine_FieldDay(b *testing.B) {
	engine := DefaultEngine()
	events := []IrrigationEvent{
		event(1, NewTimeOfDay(6, 0), NewTimeOfDay(7, 0), "27152"),
		event(1, NewTimeOfDay(18, 0), NewTimeOfDay(21, 0), "81456"),
	}
	acres := dec("2")
	for i := 0; i < b.N; i++ {
		engine.FieldDay(acres, events)
	}
}
