package models

import (
	"encoding/json"
	"time"
)

// APITimeLayout is how timestamps are sent: UTC, whole seconds, Z suffix.
const APITimeLayout = "2006-01-02T15:04:05Z"

// Timestamp is a time sent to the API. The zero value encodes as null.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(APITimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
