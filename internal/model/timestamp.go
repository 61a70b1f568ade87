package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// CanonicalLayout renders UTC instants at fixed width so that comparing the
// strings lexicographically orders them chronologically.
const CanonicalLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp is an instant that always renders in canonical UTC form.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp accepts any RFC 3339 date-time and normalizes it to UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	if !strfmt.IsDateTime(s) {
		return Timestamp{}, fmt.Errorf("%w: %q is not an RFC 3339 date-time", ErrValidation, s)
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return NewTimestamp(time.Time(dt)), nil
}

// String returns the canonical form.
func (t Timestamp) String() string {
	return t.Time.UTC().Format(CanonicalLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
