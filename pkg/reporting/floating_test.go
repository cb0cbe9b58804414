package reporting

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
)

func priorReport(facility, field uuid.UUID, p Period, loading string) DetailedMonthlyReport {
	r := DetailedMonthlyReport{FacilityID: facility, Period: p}
	r.Fields[0] = MonthlyFieldReport{Slot: 1, SprayfieldID: field, MonthlyLoading: dec(loading)}
	return r
}

func TestFloatingTotal_FullYear(t *testing.T) {
	facility, field := uuid.New(), uuid.New()
	current := Period{Year: 2024, Month: 12}

	// v1..v11 = 1..11 for the eleven preceding months.
	var prior []DetailedMonthlyReport
	for i, p := range current.PrecedingPeriods(11) {
		prior = append(prior, priorReport(facility, field, p, strconv.Itoa(i+1)))
	}

	window := PriorLoadings(facility, current, prior)
	if len(window) != 11 {
		t.Fatalf("PriorLoadings returned %d reports, expected 11", len(window))
	}
	got := FloatingTotal(dec("0.5"), field, window)
	if !got.Equal(dec("66.5")) {
		t.Errorf("FloatingTotal = %s, expected 66.5 (0.5 + 1 + ... + 11)", got)
	}
}

func TestFloatingTotal_PartialHistory(t *testing.T) {
	facility, field := uuid.New(), uuid.New()
	current := Period{Year: 2024, Month: 3}
	prior := []DetailedMonthlyReport{
		priorReport(facility, field, Period{2024, 2}, "1"),
		priorReport(facility, field, Period{2024, 1}, "2"),
		priorReport(facility, field, Period{2023, 12}, "3"),
	}

	got := FloatingTotal(dec("4"), field, PriorLoadings(facility, current, prior))
	if !got.Equal(dec("10")) {
		t.Errorf("FloatingTotal = %s, expected 10", got)
	}
}

func TestPriorLoadings_Filters(t *testing.T) {
	facility, field := uuid.New(), uuid.New()
	current := Period{Year: 2024, Month: 12}

	tests := []struct {
		name     string
		prior    []DetailedMonthlyReport
		expected string
	}{
		{
			name:     "no history",
			prior:    nil,
			expected: "1",
		},
		{
			name: "twelve months back is outside the window",
			prior: []DetailedMonthlyReport{
				priorReport(facility, field, Period{2023, 12}, "100"),
				priorReport(facility, field, Period{2024, 1}, "2"),
			},
			expected: "3",
		},
		{
			name: "current period is excluded",
			prior: []DetailedMonthlyReport{
				priorReport(facility, field, current, "100"),
				priorReport(facility, field, Period{2024, 11}, "2"),
			},
			expected: "3",
		},
		{
			name: "future period is excluded",
			prior: []DetailedMonthlyReport{
				priorReport(facility, field, Period{2025, 1}, "100"),
			},
			expected: "1",
		},
		{
			name: "other facility is excluded",
			prior: []DetailedMonthlyReport{
				priorReport(uuid.New(), field, Period{2024, 11}, "100"),
			},
			expected: "1",
		},
		{
			name: "other sprayfield contributes nothing",
			prior: []DetailedMonthlyReport{
				priorReport(facility, uuid.New(), Period{2024, 11}, "100"),
			},
			expected: "1",
		},
		{
			name: "duplicate period counted once",
			prior: []DetailedMonthlyReport{
				priorReport(facility, field, Period{2024, 11}, "2"),
				priorReport(facility, field, Period{2024, 11}, "2"),
			},
			expected: "3",
		},
		{
			name: "gap months are not padded",
			prior: []DetailedMonthlyReport{
				priorReport(facility, field, Period{2024, 10}, "2"),
				priorReport(facility, field, Period{2024, 6}, "3"),
			},
			expected: "6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FloatingTotal(dec("1"), field, PriorLoadings(facility, current, tt.prior))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("FloatingTotal = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestPriorLoadings_MostRecentFirst(t *testing.T) {
	facility, field := uuid.New(), uuid.New()
	current := Period{Year: 2024, Month: 6}
	prior := []DetailedMonthlyReport{
		priorReport(facility, field, Period{2024, 1}, "1"),
		priorReport(facility, field, Period{2024, 5}, "1"),
		priorReport(facility, field, Period{2024, 3}, "1"),
	}

	window := PriorLoadings(facility, current, prior)
	expected := []Period{{2024, 5}, {2024, 3}, {2024, 1}}
	for i, p := range expected {
		if window[i].Period != p {
			t.Errorf("window[%d] = %v, expected %v", i, window[i].Period, p)
		}
	}
}

func TestFloatingTotal_MatchesFieldInAnySlot(t *testing.T) {
	facility, field := uuid.New(), uuid.New()
	r := DetailedMonthlyReport{FacilityID: facility, Period: Period{2024, 4}}
	r.Fields[3] = MonthlyFieldReport{Slot: 4, SprayfieldID: field, MonthlyLoading: dec("2.25")}

	got := FloatingTotal(dec("1"), field, PriorLoadings(facility, Period{2024, 5}, []DetailedMonthlyReport{r}))
	if !got.Equal(dec("3.25")) {
		t.Errorf("FloatingTotal = %s, expected 3.25", got)
	}
}
