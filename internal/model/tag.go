package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tag is immutable reference data attached to claims.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// UploadHeader holds the headers a presigned upload must be sent with.
// Values may arrive as a string or an array of strings.
type UploadHeader map[string][]string

// UnmarshalJSON accepts {"k": "v"} and {"k": ["v1", "v2"]}.
func (h *UploadHeader) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(UploadHeader, len(raw))
	for k, v := range raw {
		var single string
		if err := json.Unmarshal(v, &single); err == nil {
			out[k] = []string{single}
			continue
		}
		var multi []string
		if err := json.Unmarshal(v, &multi); err != nil {
			return fmt.Errorf("header %q: expected string or string array", k)
		}
		out[k] = multi
	}
	*h = out
	return nil
}

// Joined returns the value for key k with multiple values joined by ", ".
func (h UploadHeader) Joined(k string) string {
	return strings.Join(h[k], ", ")
}
