package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque identifier. The backend uses numeric keys while guest-mode
// lines use generated strings, so ID accepts both JSON numbers and strings
// and keeps the value as text.
type ID string

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// numeric reports whether id is an integer in canonical decimal form and can
// be sent as a JSON number. "007", "+5" and "-0" stay strings.
func (id ID) numeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON encodes numeric identifiers as JSON numbers and everything else
// as a string, so ids round-trip in the shape the backend produced them.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
