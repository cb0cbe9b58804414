package reporting

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		rate       string
		limit      string
		efficiency string
		expected   ComplianceStatus
	}{
		// Rule 1: over the limit
		{"just over limit", "10.01", "10", "80", StatusNonCompliant},
		{"far over limit with perfect efficiency", "25", "10", "100", StatusNonCompliant},
		{"any loading against zero limit", "0.1", "0", "100", StatusNonCompliant},

		// Rule 2: efficiency floor
		{"efficiency below floor", "2", "10", "69.9", StatusNonCompliant},
		{"near limit and below floor", "9.5", "10", "60", StatusNonCompliant},

		// Rule 3: review band
		{"exactly at limit", "10", "10", "80", StatusUnderReview},
		{"above ninety percent of limit", "9.01", "10", "95", StatusUnderReview},
		{"efficiency at floor", "2", "10", "70", StatusUnderReview},
		{"efficiency just under review level", "2", "10", "74.99", StatusUnderReview},

		// Rule 4
		{"exactly ninety percent of limit", "9", "10", "80", StatusCompliant},
		{"efficiency at review level", "5", "10", "75", StatusCompliant},
		{"comfortably inside", "3", "12", "100", StatusCompliant},
		{"nothing applied against zero limit", "0", "0", "80", StatusCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(dec(tt.rate), dec(tt.limit), dec(tt.efficiency))
			if got != tt.expected {
				t.Errorf("Classify(%s, %s, %s) = %s, expected %s",
					tt.rate, tt.limit, tt.efficiency, got, tt.expected)
			}
		})
	}
}

func BenchmarkClassify(b *testing.B) {
	rate, limit, eff := dec("9.5"), dec("10"), dec("80")
	for i := 0; i < b.N; i++ {
		Classify(rate, limit, eff)
	}
}
