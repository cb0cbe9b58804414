package reporting

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FloatingWindow is the number of prior months summed into a floating total.
const FloatingWindow = 11

// PriorLoadings selects the reports that count toward the floating total of
// current: same facility, within the FloatingWindow months before it, one
// report per period (first one wins), most recent first.
func PriorLoadings(facilityID uuid.UUID, current Period, prior []DetailedMonthlyReport) []DetailedMonthlyReport {
	seen := make(map[Period]bool, FloatingWindow)
	selected := make([]DetailedMonthlyReport, 0, FloatingWindow)
	for _, r := range prior {
		if r.FacilityID != facilityID || seen[r.Period] {
			continue
		}
		age := current.MonthsSince(r.Period)
		if age < 1 || age > FloatingWindow {
			continue
		}
		seen[r.Period] = true
		selected = append(selected, r)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[j].Period.Before(selected[i].Period)
	})
	if len(selected) > FloatingWindow {
		selected = selected[:FloatingWindow]
	}
	return selected
}

// FloatingTotal is the current month's loading plus the same sprayfield's
// monthly loading on each qualifying prior report. Missing history is not
// padded; a young facility simply sums what it has.
func FloatingTotal(current decimal.Decimal, sprayfieldID uuid.UUID, prior []DetailedMonthlyReport) decimal.Decimal {
	total := current
	for _, r := range prior {
		for _, f := range r.Fields {
			if f.Configured() && f.SprayfieldID == sprayfieldID {
				total = total.Add(f.MonthlyLoading)
				break
			}
		}
	}
	return total
}

// ApplyFloatingTotals fills FloatingTotal on every configured field block.
func ApplyFloatingTotals(report *DetailedMonthlyReport, prior []DetailedMonthlyReport) {
	window := PriorLoadings(report.FacilityID, report.Period, prior)
	for i := range report.Fields {
		f := &report.Fields[i]
		if !f.Configured() {
			continue
		}
		f.FloatingTotal = FloatingTotal(f.MonthlyLoading, f.SprayfieldID, window)
	}
}
