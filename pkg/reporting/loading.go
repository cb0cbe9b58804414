package reporting

import (
	"github.com/shopspring/decimal"
)

// GallonsPerAcreInch converts gallons applied over one acre into inches of depth.
const GallonsPerAcreInch = 27152

var minutesPerHour = decimal.NewFromInt(60)

// Engine computes loading figures and monthly reports. The zero value is
// not usable; build one with NewEngine.
type Engine struct {
	gallonsPerAcreInch decimal.Decimal
}

// NewEngine creates an engine using the given gallons-per-acre-inch factor;
// a non-positive factor falls back to GallonsPerAcreInch.
func NewEngine(gallonsPerAcreInch decimal.Decimal) *Engine {
	if !gallonsPerAcreInch.IsPositive() {
		gallonsPerAcreInch = decimal.NewFromInt(GallonsPerAcreInch)
	}
	return &Engine{gallonsPerAcreInch: gallonsPerAcreInch}
}

// DefaultEngine uses GallonsPerAcreInch.
func DefaultEngine() *Engine {
	return NewEngine(decimal.Zero)
}

// GallonsPerAcreInch returns the conversion factor in use.
func (e *Engine) GallonsPerAcreInch() decimal.Decimal {
	return e.gallonsPerAcreInch
}

// FieldDay holds one sprayfield's computed figures for one day.
type FieldDay struct {
	Events           int
	Volume           decimal.Decimal
	Minutes          int
	DailyLoading     decimal.NullDecimal
	MaxHourlyLoading decimal.NullDecimal
}

// Irrigated reports whether any event was logged; a day without events has
// no values at all, which differs from a logged zero-gallon run.
func (d FieldDay) Irrigated() bool {
	return d.Events > 0
}

// FieldDay computes volume, minutes, daily loading and maximum hourly
// loading for the events of a single sprayfield on a single day.
func (e *Engine) FieldDay(acres decimal.Decimal, events []IrrigationEvent) FieldDay {
	day := FieldDay{Events: len(events), Volume: decimal.Zero}
	for _, ev := range events {
		day.Volume = day.Volume.Add(ev.Gallons)
		day.Minutes += ev.Minutes()
	}
	day.DailyLoading = e.DailyLoading(day.Volume, acres)
	day.MaxHourlyLoading = MaxHourlyLoading(day.DailyLoading, day.Minutes)
	return day
}

// DailyLoading converts gallons applied on a field into inches. Zero volume
// or a field without positive area yields no value.
func (e *Engine) DailyLoading(gallons, acres decimal.Decimal) decimal.NullDecimal {
	if !acres.IsPositive() || gallons.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(gallons.Div(acres.Mul(e.gallonsPerAcreInch)))
}

// MaxHourlyLoading normalizes a day's loading to the hourly rate implied by
// the time actually spent irrigating. Runs shorter than an hour keep the
// daily figure.
func MaxHourlyLoading(daily decimal.NullDecimal, minutes int) decimal.NullDecimal {
	if !daily.Valid || minutes == 0 {
		return decimal.NullDecimal{}
	}
	if minutes < 60 {
		return daily
	}
	// (daily / minutes) * 60, multiplied first to keep the division exact.
	return decimal.NewNullDecimal(daily.Decimal.Mul(minutesPerHour).Div(decimal.NewFromInt(int64(minutes))))
}
