package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValueKind discriminates the shapes a recorded answer can take. The shape is
// decided by the question's type at the time the answer was captured: boolean
// questions produce Bool (or Null when unanswered), select questions produce
// Multi, and text/number/date/time questions produce Text. Numbers are kept in
// their textual form so a later scale change never reinterprets stored data.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindText
	KindMulti
)

// Value is a tagged variant over the answer shapes. The zero Value is null.
type Value struct {
	kind  ValueKind
	b     bool
	text  string
	multi []string
}

func NullValue() Value             { return Value{} }
func BoolValue(b bool) Value       { return Value{kind: KindBool, b: b} }
func TextValue(s string) Value     { return Value{kind: KindText, text: s} }
func MultiValue(vs []string) Value { return Value{kind: KindMulti, multi: vs} }

func (v Value) Kind() ValueKind { return v.kind }

// Bool returns the boolean answer. Only meaningful when Kind is KindBool.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Text returns the textual answer. Only meaningful when Kind is KindText.
func (v Value) Text() string { return v.text }

// Multi returns the chosen option strings. Only meaningful when Kind is KindMulti.
func (v Value) Multi() []string { return v.multi }

// IsFilled reports whether the value counts as an answered slot for completion
// statistics. false and "0" are answers; null, an empty list and a blank
// string are not.
func (v Value) IsFilled() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindMulti:
		return len(v.multi) > 0
	case KindText:
		return strings.TrimSpace(v.text) != ""
	default:
		return true
	}
}

// Display renders the value for tables and CSV cells: multi values joined with
// ", ", booleans as Yes/No, null as the empty string.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "Yes"
		}
		return "No"
	case KindMulti:
		return strings.Join(v.multi, ", ")
	default:
		return v.text
	}
}

// MarshalJSON encodes the wire forms: null, true/false, "text", ["a","b"].
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindMulti:
		if v.multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.multi)
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON accepts the wire forms plus legacy looseness: JSON numbers
// become their textual form, and anything unrecognizable degrades to null
// rather than failing the whole document.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = NullValue()
		return nil
	}

	switch trimmed[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			*v = NullValue()
			return nil
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*v = NullValue()
			return nil
		}
		*v = TextValue(s)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			*v = NullValue()
			return nil
		}
		opts := make([]string, 0, len(raw))
		for _, r := range raw {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				var n json.Number
				if err := json.Unmarshal(r, &n); err != nil {
					continue
				}
				s = n.String()
			}
			opts = append(opts, s)
		}
		*v = MultiValue(opts)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*v = NullValue()
			return nil
		}
		*v = TextValue(n.String())
	}
	return nil
}

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindText:
		return v.text == o.text
	case KindMulti:
		if len(v.multi) != len(o.multi) {
			return false
		}
		for i := range v.multi {
			if v.multi[i] != o.multi[i] {
				return false
			}
		}
	}
	return true
}

// String implements fmt.Stringer for debug output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindMulti:
		return "[" + strings.Join(v.multi, ", ") + "]"
	default:
		return v.text
	}
}
