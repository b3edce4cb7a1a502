package models

import (
	"encoding/json"
	"time"
)

// TimeLayout is the fixed format used for dates in the document files.
const TimeLayout = "2006-01-02 15:04:05"

// DateTime wraps time.Time so that it marshals with TimeLayout instead of
// RFC3339, keeping the stored files readable and stable across round trips.
type DateTime struct {
	time.Time
}

func Now() DateTime {
	return DateTime{time.Now().UTC().Truncate(time.Second)}
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t.UTC().Truncate(time.Second)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(TimeLayout))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
