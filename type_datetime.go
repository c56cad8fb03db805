package cryptofolio

import (
	"fmt"
	"time"
)

// DateTimeLayout is the canonical second-precision layout used in the
// journal file and in every report.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is the timestamp of a transaction, with second precision.
type DateTime struct {
	t time.Time
}

// NewDateTime creates a DateTime in the local timezone.
func NewDateTime(year int, month time.Month, day, hour, min, sec int) DateTime {
	return DateTime{t: time.Date(year, month, day, hour, min, sec, 0, time.Local)}
}

// Now returns the current time truncated to the second.
func Now() DateTime {
	return DateTime{t: time.Now().Truncate(time.Second)}
}

// ParseDateTime parses the canonical layout.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return DateTime{t: t}, nil
}

func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }
func (d DateTime) After(o DateTime) bool  { return d.t.After(o.t) }
func (d DateTime) Equal(o DateTime) bool  { return d.t.Equal(o.t) }
func (d DateTime) IsZero() bool           { return d.t.IsZero() }
func (d DateTime) Time() time.Time        { return d.t }
func (d DateTime) String() string         { return d.t.Format(DateTimeLayout) }
