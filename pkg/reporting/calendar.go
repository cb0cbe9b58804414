package reporting

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in the given Gregorian month.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayIndex converts a 1-based day of month into a 0-based slot.
func DayIndex(day int) int {
	return day - 1
}

// Period identifies one reporting month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewPeriod builds a Period and validates it.
func NewPeriod(year, month int) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year <= 0 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Days returns the number of days in the period.
func (p Period) Days() int {
	return DaysInMonth(p.Year, p.Month)
}

// Start is midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is midnight UTC on the last day of the period.
func (p Period) End() time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Days(), 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts the period by n months (n may be negative).
func (p Period) AddMonths(n int) Period {
	idx := p.index() + n
	return Period{Year: idx / 12, Month: idx%12 + 1}
}

func (p Period) Prev() Period {
	return p.AddMonths(-1)
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	return p.index() < other.index()
}

// MonthsSince returns how many months p lies after other (negative when earlier).
func (p Period) MonthsSince(other Period) int {
	return p.index() - other.index()
}

// Contains reports whether the calendar date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// PrecedingPeriods returns the n periods immediately before p, most recent first.
func (p Period) PrecedingPeriods(n int) []Period {
	periods := make([]Period, 0, n)
	for i := 1; i <= n; i++ {
		periods = append(periods, p.AddMonths(-i))
	}
	return periods
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) index() int {
	return p.Year*12 + p.Month - 1
}
