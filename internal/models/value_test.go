package models

import (
	"encoding/json"
	"testing"
)

func TestIsFilled(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NullValue(), false},
		{"bool true", BoolValue(true), true},
		{"bool false", BoolValue(false), true},
		{"text", TextValue("hello"), true},
		{"text zero", TextValue("0"), true},
		{"text empty", TextValue(""), false},
		{"text whitespace", TextValue("   "), false},
		{"multi", MultiValue([]string{"a"}), true},
		{"multi empty", MultiValue([]string{}), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.IsFilled(); got != tc.want {
				t.Errorf("IsFilled() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValueDisplay(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NullValue(), ""},
		{BoolValue(true), "Yes"},
		{BoolValue(false), "No"},
		{TextValue("7"), "7"},
		{MultiValue([]string{"left knee", "right knee"}), "left knee, right knee"},
	}
	for _, tc := range cases {
		if got := tc.v.Display(); got != tc.want {
			t.Errorf("Display(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		json string
	}{
		{"null", NullValue(), "null"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"text", TextValue("ok"), `"ok"`},
		{"multi", MultiValue([]string{"a", "b"}), `["a","b"]`},
		{"multi empty", MultiValue([]string{}), "[]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tc.json {
				t.Errorf("Marshal = %s, want %s", data, tc.json)
			}
			var back Value
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !back.Equal(tc.v) {
				t.Errorf("round trip = %v, want %v", back, tc.v)
			}
		})
	}
}

func TestValueUnmarshalLooseShapes(t *testing.T) {
	cases := []struct {
		name string
		json string
		want Value
	}{
		{"number becomes text", "7.5", TextValue("7.5")},
		{"integer becomes text", "3", TextValue("3")},
		{"mixed array keeps numbers", `["a", 2]`, MultiValue([]string{"a", "2"})},
		{"object degrades to null", `{"x":1}`, NullValue()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tc.json), &v); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tc.json, err)
			}
			if !v.Equal(tc.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tc.json, v, tc.want)
			}
		})
	}
}
