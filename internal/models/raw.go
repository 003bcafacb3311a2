package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Helpers for decoding loosely-typed fields from legacy documents. Each
// accepts the field as raw JSON and coerces without ever failing; garbage
// degrades to the zero value and normalisation applies the real default.

func rawText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func rawStrings(raw json.RawMessage) []string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, rawText(item))
		}
		return out
	}
	// Older documents store tag lists as a single comma-separated string.
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return strings.Split(s, ",")
}

// rawBool follows truthiness: false, 0, "", and null are false, anything else
// present is true. The textual forms "false" and "0" also read as false, the
// same concession the numeric helpers make for stringly-typed documents.
func rawBool(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", "false", "0", `""`, `"false"`, `"0"`:
		return false
	}
	return true
}

func rawInt(raw json.RawMessage) int {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(n)
		}
	}
	return 0
}
