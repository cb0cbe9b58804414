package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"p9e.in/landapp/pkg/reporting"
)

// ClockTime wraps a wall-clock time of day so we can control both
// JSON un/marshaling and SQL "time" column encoding.
type ClockTime reporting.TimeOfDay

// TimeOfDay converts to the engine's representation.
func (ct ClockTime) TimeOfDay() reporting.TimeOfDay {
	return reporting.TimeOfDay(ct)
}

// parseClock accepts "15:04", "15:04:05", "3:04 PM" or a full timestamp
// ("2025-05-16T15:32:25Z"), keeping only the hour and minute.
func parseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)

	if tod, err := reporting.ParseTimeOfDay(s); err == nil {
		return ClockTime(tod), nil
	}

	for _, layout := range []string{"3:04 PM", "3:04PM", time.RFC3339Nano, "2006-01-02T15:04:05", "15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime(reporting.NewTimeOfDay(t.Hour(), t.Minute())), nil
		}
	}
	return 0, fmt.Errorf("ClockTime: cannot parse %q", s)
}

func (ct *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("ClockTime.UnmarshalJSON: %w", err)
	}
	parsed, err := parseClock(s)
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}

// MarshalJSON always emits "15:04".
func (ct ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ct.TimeOfDay().String())
}

// Value implements driver.Valuer so GORM/pgx can
// turn ClockTime into a SQL TIME parameter.
func (ct ClockTime) Value() (driver.Value, error) {
	return ct.TimeOfDay().String() + ":00", nil
}

// Scan implements sql.Scanner so GORM can read
// TIME back into ClockTime when querying.
func (ct *ClockTime) Scan(src interface{}) error {
	if src == nil {
		*ct = 0
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*ct = ClockTime(reporting.NewTimeOfDay(v.Hour(), v.Minute()))
		return nil
	case []byte:
		parsed, err := parseClock(string(v))
		if err != nil {
			return fmt.Errorf("ClockTime.Scan: %w", err)
		}
		*ct = parsed
		return nil
	case string:
		parsed, err := parseClock(v)
		if err != nil {
			return fmt.Errorf("ClockTime.Scan: %w", err)
		}
		*ct = parsed
		return nil
	default:
		return fmt.Errorf("ClockTime.Scan: unsupported type %T", src)
	}
}

// GormDataType pins the column to TIME without a gorm tag on every field.
func (ClockTime) GormDataType() string {
	return "time"
}
