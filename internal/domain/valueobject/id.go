package valueobject

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier shared by columns and tasks.
// Persisted boards written by older clients may carry numeric ids; those are
// decoded into their decimal text.
type ID string

// String returns the identifier text
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty
func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON always encodes the identifier as a JSON string
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("identifier cannot be null")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
