package models

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNormaliseScale(t *testing.T) {
	nan := math.NaN()
	ten := 10.0

	if got := NormaliseScale(nil); got != nil {
		t.Errorf("nil scale = %+v, want nil", got)
	}
	if got := NormaliseScale(&Scale{}); got != nil {
		t.Errorf("empty scale = %+v, want nil", got)
	}
	if got := NormaliseScale(&Scale{Min: &nan}); got != nil {
		t.Errorf("all-invalid scale = %+v, want nil", got)
	}

	got := NormaliseScale(&Scale{Min: &nan, Max: &ten})
	if got == nil || got.Min != nil || got.Max == nil || *got.Max != 10 {
		t.Errorf("partial scale = %+v, want max-only", got)
	}
}

func TestScaleKey(t *testing.T) {
	var nilScale *Scale
	if nilScale.Key() != "null" {
		t.Errorf("nil key = %q", nilScale.Key())
	}
	if NewScale(0, 10, 1).Key() != "0|10|1" {
		t.Errorf("key = %q", NewScale(0, 10, 1).Key())
	}

	// Unset is distinct from zero.
	zero := 0.0
	unsetMin := &Scale{Max: &zero}
	zeroMin := &Scale{Min: &zero, Max: &zero}
	if unsetMin.Key() == zeroMin.Key() {
		t.Error("unset min should key differently from min=0")
	}
}

func TestScaleFromRawViaQuestion(t *testing.T) {
	cases := []struct {
		name    string
		json    string
		wantNil bool
		wantKey string
	}{
		{"numbers", `{"text":"x","scale":{"min":0,"max":10,"step":1}}`, false, "0|10|1"},
		{"numeric strings", `{"text":"x","scale":{"min":"1","max":"5"}}`, false, "1|5|null"},
		{"all empty", `{"text":"x","scale":{"min":"","max":null}}`, true, ""},
		{"absent", `{"text":"x"}`, true, ""},
		{"malformed field still counts as set", `{"text":"x","scale":{"min":"abc"}}`, false, "null|null|null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var q Question
			if err := json.Unmarshal([]byte(tc.json), &q); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if tc.wantNil {
				if q.Scale != nil {
					t.Errorf("Scale = %+v, want nil", q.Scale)
				}
				return
			}
			if q.Scale == nil {
				t.Fatal("Scale = nil, want a value")
			}
			if q.Scale.Key() != tc.wantKey {
				t.Errorf("Key = %q, want %q", q.Scale.Key(), tc.wantKey)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"  ", []string{}},
		{"a, b ,, c", []string{"a", "b", "c"}},
		{"health", []string{"health"}},
	}
	for _, tc := range cases {
		if got := ParseTags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
