package reporting

import (
	"errors"
	"fmt"
)

// Error classes. Every specific error below wraps exactly one of them so
// callers can branch with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violation")
)

var (
	ErrDuplicateReport      = fmt.Errorf("%w: a report already exists for this facility and period", ErrBusinessRule)
	ErrNoIrrigationActivity = fmt.Errorf("%w: no irrigation events recorded for this facility and period", ErrBusinessRule)
	ErrOwnershipMismatch    = fmt.Errorf("%w: record belongs to another company or facility", ErrBusinessRule)
	ErrInvalidPeriod        = fmt.Errorf("%w: invalid reporting period", ErrBusinessRule)
	ErrTooManyFields        = fmt.Errorf("%w: at most %d sprayfields per detailed report", ErrBusinessRule, MaxReportFields)
)

// NotFoundError names the missing entity.
func NotFoundError(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}
