package models

import (
	"bytes"
	"fmt"
	"time"
)

// LocalTimeLayout is the wire format for all timestamps: ISO-8601
// local date-time without a zone offset.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime marshals as ISO-8601 local date-time without offset.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(LocalTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	if len(raw) == 0 || string(raw) == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{LocalTimeLayout, "2006-01-02T15:04:05.999999999"} {
		if parsed, err := time.ParseInLocation(layout, string(raw), time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date-time %q, expected %s", raw, LocalTimeLayout)
}
