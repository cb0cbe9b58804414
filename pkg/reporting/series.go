package reporting

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SeriesLength is the fixed number of day slots in every DailySeries,
// regardless of how many days the reporting month has.
const SeriesLength = 31

// DailySeries holds one optional value per day of month. An absent slot
// means "no value", which is distinct from a recorded zero.
type DailySeries[T any] struct {
	slots []*T
}

// DecimalSeries is the series type used for every numeric daily metric.
type DecimalSeries = DailySeries[decimal.Decimal]

// NewDailySeries returns an all-absent series of SeriesLength slots.
func NewDailySeries[T any]() DailySeries[T] {
	return DailySeries[T]{slots: EnsureInitialized[T](nil, SeriesLength)}
}

// SeriesFrom wraps values (nil entries are absent days) and normalizes the length.
func SeriesFrom[T any](values []*T) DailySeries[T] {
	slots := make([]*T, SeriesLength)
	copy(slots, values)
	return DailySeries[T]{slots: slots}
}

// EnsureInitialized pads values with absent slots up to length, or truncates
// it to length. The input slice is never modified; calling it again on the
// result is a no-op.
func EnsureInitialized[T any](values []*T, length int) []*T {
	if len(values) == length {
		return values
	}
	out := make([]*T, length)
	copy(out, values)
	return out
}

// EnsureInitialized normalizes the series in place to SeriesLength slots.
func (s *DailySeries[T]) EnsureInitialized() {
	s.slots = EnsureInitialized(s.slots, SeriesLength)
}

// Get returns the value for a 1-based day and whether one is present.
func (s DailySeries[T]) Get(day int) (T, bool) {
	var zero T
	i := DayIndex(day)
	if i < 0 || i >= len(s.slots) || s.slots[i] == nil {
		return zero, false
	}
	return *s.slots[i], true
}

// Set stores v for a 1-based day. Days outside 1..31 are ignored.
func (s *DailySeries[T]) Set(day int, v T) {
	s.EnsureInitialized()
	i := DayIndex(day)
	if i < 0 || i >= SeriesLength {
		return
	}
	s.slots[i] = &v
}

// Clear resets a day back to "no value".
func (s *DailySeries[T]) Clear(day int) {
	s.EnsureInitialized()
	i := DayIndex(day)
	if i < 0 || i >= SeriesLength {
		return
	}
	s.slots[i] = nil
}

// Len is always SeriesLength once the series has been touched.
func (s DailySeries[T]) Len() int {
	return len(EnsureInitialized(s.slots, SeriesLength))
}

// Values returns a copy of the slots; absent days are nil.
func (s DailySeries[T]) Values() []*T {
	src := EnsureInitialized(s.slots, SeriesLength)
	out := make([]*T, len(src))
	for i, v := range src {
		if v != nil {
			c := *v
			out[i] = &c
		}
	}
	return out
}

func (s DailySeries[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(EnsureInitialized(s.slots, SeriesLength))
}

func (s *DailySeries[T]) UnmarshalJSON(b []byte) error {
	var values []*T
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	s.slots = EnsureInitialized(values, SeriesLength)
	return nil
}

// HasAny reports whether at least one day carries a value.
func HasAny[T any](s DailySeries[T]) bool {
	for _, v := range s.slots {
		if v != nil {
			return true
		}
	}
	return false
}

// Sum adds every present value; absent days contribute nothing.
func Sum(s DecimalSeries) decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.slots {
		if v != nil {
			total = total.Add(*v)
		}
	}
	return total
}

// Max returns the largest present value, or zero for an all-absent series.
func Max(s DecimalSeries) decimal.Decimal {
	var best *decimal.Decimal
	for _, v := range s.slots {
		if v != nil && (best == nil || v.GreaterThan(*best)) {
			best = v
		}
	}
	if best == nil {
		return decimal.Zero
	}
	return *best
}
