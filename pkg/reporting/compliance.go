package reporting

import "github.com/shopspring/decimal"

var (
	efficiencyFloor       = decimal.NewFromInt(70)
	efficiencyReviewLevel = decimal.NewFromInt(75)
	limitReviewFraction   = decimal.NewFromFloat(0.9)
)

// Classify maps a loading rate, its limit and the application efficiency to
// a compliance status. The hard rules (over limit, efficiency below 70) are
// checked before the review band, so a report that is both near its limit
// and under the efficiency floor is NonCompliant.
func Classify(loadingRate, loadingLimit, efficiency decimal.Decimal) ComplianceStatus {
	switch {
	case loadingRate.GreaterThan(loadingLimit):
		return StatusNonCompliant
	case efficiency.LessThan(efficiencyFloor):
		return StatusNonCompliant
	case loadingRate.GreaterThan(loadingLimit.Mul(limitReviewFraction)),
		efficiency.LessThan(efficiencyReviewLevel):
		return StatusUnderReview
	default:
		return StatusCompliant
	}
}
