package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID is a numeric id that also accepts a quoted number in JSON, the form
// select inputs and FormData send.
type FlexID uint

func (id *FlexID) UnmarshalJSON(data []byte) error {
	raw, ok := unquoteNumber(data)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = FlexID(n)
	return nil
}

// FlexFloat is a float that also accepts a quoted number in JSON.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, ok := unquoteNumber(data)
	if !ok {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*f = FlexFloat(n)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// unquoteNumber strips surrounding quotes and whitespace; ok is false for
// null, which leaves the zero value.
func unquoteNumber(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", false
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = bytes.TrimSpace(data[1 : len(data)-1])
	}
	return string(data), true
}
