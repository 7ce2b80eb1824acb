package timeutil

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, the
// ISO-8601 shape emitted by API responses ("2024-01-15T10:30:00.000Z").
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used for log timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time wraps time.Time so that it always serializes in RFC3339Millis, in both
// JSON and CBOR responses.
//
// Null handling: decoding null preserves the existing value, matching time.Time.
type Time struct {
	time.Time
}

// NewTime creates a Time from a standard time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the current time as a Time.
func Now() Time {
	return Time{Time: time.Now()}
}

// String formats the time in RFC3339Millis.
func (t Time) String() string {
	return t.UTC().Format(RFC3339Millis)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting RFC 3339 variants.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return t.parse(s)
}

// MarshalCBOR implements cbor.Marshaler. The value is a text string rather
// than the binary encoding time.Time would otherwise promote.
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (t *Time) UnmarshalCBOR(data []byte) error {
	var s *string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	return t.parse(*s)
}

// Schema describes Time as an OpenAPI date-time string.
func (Time) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:     huma.TypeString,
		Format:   "date-time",
		Examples: []any{"2024-01-15T10:30:00.000Z"},
	}
}

func (t *Time) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
