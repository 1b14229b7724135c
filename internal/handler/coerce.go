package handler

import (
	"bytes"
	"fmt"
	"strconv"
)

// flexInt unmarshals from a JSON number or a numeric string. Clients of the
// legacy UI submit form values as strings.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	value, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", data)
	}
	*n = flexInt(value)
	return nil
}

// flexFloat unmarshals from a JSON number or a numeric string.
type flexFloat float64

func (n *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", data)
	}
	*n = flexFloat(value)
	return nil
}
