package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Scale bounds a number question: any subset of min/max/step may be set.
// A nil *Scale means "no scale configured" so consumers can apply defaults.
type Scale struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Step *float64 `json:"step"`
}

// NewScale builds a scale with all three fields set.
func NewScale(min, max, step float64) *Scale {
	return &Scale{Min: &min, Max: &max, Step: &step}
}

// NormaliseScale canonicalizes a scale. A nil scale, or one with no field set,
// becomes nil. It never fails; each field is independently kept or dropped.
func NormaliseScale(s *Scale) *Scale {
	if s == nil {
		return nil
	}
	min := finiteOrNil(s.Min)
	max := finiteOrNil(s.Max)
	step := finiteOrNil(s.Step)
	if min == nil && max == nil && step == nil {
		return nil
	}
	return &Scale{Min: min, Max: max, Step: step}
}

func finiteOrNil(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	v := *f
	return &v
}

// Key renders a scale as a comparable string, with unset fields distinct from
// any number (including 0). A nil scale keys as "null".
func (s *Scale) Key() string {
	if s == nil {
		return "null"
	}
	return numKey(s.Min) + "|" + numKey(s.Max) + "|" + numKey(s.Step)
}

func numKey(f *float64) string {
	if f == nil {
		return "null"
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

// Equal compares two normalised scales field by field.
func (s *Scale) Equal(o *Scale) bool {
	return NormaliseScale(s).Key() == NormaliseScale(o).Key()
}

// scaleFromRaw decodes a scale from an arbitrary JSON value. Fields may be
// numbers, numeric strings, empty strings, null, or absent. If no field is
// set at all the result is nil; otherwise malformed fields individually
// become null, matching documents written by older versions of the tool.
func scaleFromRaw(raw json.RawMessage) *Scale {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	minRaw, minSet := rawNumericField(fields["min"])
	maxRaw, maxSet := rawNumericField(fields["max"])
	stepRaw, stepSet := rawNumericField(fields["step"])

	if !minSet && !maxSet && !stepSet {
		return nil
	}
	return &Scale{Min: minRaw, Max: maxRaw, Step: stepRaw}
}

// rawNumericField coerces one scale field. The second return reports whether
// the field was "set" (present and neither null nor empty string), which is
// judged before coercion: a present-but-malformed field still counts as set.
func rawNumericField(raw json.RawMessage) (*float64, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == `""` {
		return nil, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finiteOrNil(&f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finiteOrNil(&n), true
		}
	}
	return nil, true
}

// NormaliseTags canonicalizes a tag list: trimmed, empty-filtered, order
// preserved. Duplicates are kept; tags are display labels, not keys.
func NormaliseTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits a comma-separated tag string and normalises the result.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormaliseTags(strings.Split(s, ","))
}
