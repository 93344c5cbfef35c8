package validation

import (
	"bytes"
	"fmt"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// DateTime accepts RFC 3339 timestamps, naive timestamps and bare dates.
// Values without an offset are read as UTC; every value is held in UTC.
type DateTime struct {
	time.Time
}

// ParseDateTime parses s with the layouts DateTime accepts.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return DateTime{Time: t.UTC()}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", s)
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", b)
	}
	parsed, err := ParseDateTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return d.UTC().MarshalJSON()
}

// Ptr returns the held time, or nil for a nil receiver.
func (d *DateTime) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
