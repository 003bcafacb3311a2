package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormaliseQuestionDefaults(t *testing.T) {
	q := NormaliseQuestion(Question{Text: "  Did you sleep well?  "})

	if q.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if q.Text != "Did you sleep well?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Type != TypeText {
		t.Errorf("Type = %q, want text", q.Type)
	}
	if q.Version != 1 {
		t.Errorf("Version = %d, want 1", q.Version)
	}
	if q.Tags == nil || len(q.Tags) != 0 {
		t.Errorf("Tags = %v, want empty slice", q.Tags)
	}
}

func TestNormaliseQuestionIdempotent(t *testing.T) {
	q := NormaliseQuestion(Question{
		Text:    "Symptoms",
		Type:    TypeSelect,
		Options: []string{" headache ", "", "nausea"},
		Tags:    []string{" health ", ""},
	})
	again := NormaliseQuestion(q)
	if !reflect.DeepEqual(q, again) {
		t.Errorf("not idempotent:\nfirst  %+v\nsecond %+v", q, again)
	}
	if !reflect.DeepEqual(q.Options, []string{"headache", "nausea"}) {
		t.Errorf("Options = %v", q.Options)
	}
	if !reflect.DeepEqual(q.Tags, []string{"health"}) {
		t.Errorf("Tags = %v", q.Tags)
	}
}

func TestNormaliseQuestionSelectGetsEmptyOptions(t *testing.T) {
	q := NormaliseQuestion(Question{Text: "x", Type: TypeSelect})
	if q.Options == nil {
		t.Error("select question should get an empty options slice")
	}
}

func TestNormaliseQuestionKeepsOptionsOnOtherTypes(t *testing.T) {
	// Options survive a temporary type change away from select.
	q := NormaliseQuestion(Question{Text: "x", Type: TypeText, Options: []string{"a", " b "}})
	if !reflect.DeepEqual(q.Options, []string{"a", "b"}) {
		t.Errorf("Options = %v, want cleaned list", q.Options)
	}

	// But a type without a stored list never invents one.
	q = NormaliseQuestion(Question{Text: "x", Type: TypeText})
	if q.Options != nil {
		t.Errorf("Options = %v, want nil", q.Options)
	}
}

func TestApplyNumberPresetUserValuesWin(t *testing.T) {
	q := NormaliseQuestion(Question{
		Text:   "Pain",
		Type:   TypeNumber,
		Preset: "pain_0_10",
		Units:  "points",
	})

	if q.Units != "points" {
		t.Errorf("Units = %q, user value should win over preset", q.Units)
	}
	if q.Scale == nil || *q.Scale.Min != 0 || *q.Scale.Max != 10 {
		t.Errorf("Scale = %+v, preset should fill missing scale", q.Scale)
	}
	if q.HelpText == "" || q.DescriptorText == "" {
		t.Error("preset should fill missing help and descriptor text")
	}
}

func TestApplyNumberPresetIgnoredForOtherTypes(t *testing.T) {
	q := NormaliseQuestion(Question{Text: "x", Type: TypeText, Preset: "pain_0_10"})
	if q.Scale != nil || q.HelpText != "" {
		t.Errorf("preset applied to a non-number question: %+v", q)
	}
}

func TestNeedsVersionBump(t *testing.T) {
	num := func(scale *Scale, preset string) Question {
		return Question{Text: "n", Type: TypeNumber, Scale: scale, Preset: preset}
	}
	sel := func(opts ...string) Question {
		return Question{Text: "s", Type: TypeSelect, Options: opts}
	}

	cases := []struct {
		name string
		old  *Question
		next Question
		want bool
	}{
		{"no previous question", nil, sel("a"), false},
		{"unchanged", &Question{Text: "x", Type: TypeText}, Question{Text: "x", Type: TypeText}, false},
		{"text change only", &Question{Text: "x", Type: TypeText}, Question{Text: "y", Type: TypeText}, false},
		{"type change", &Question{Type: TypeText}, Question{Type: TypeBoolean}, true},
		{"empty type counts as text", &Question{}, Question{Type: TypeText}, false},
		{"option added", ptr(sel("a", "b")), sel("a", "b", "c"), true},
		{"option removed", ptr(sel("a", "b")), sel("a"), true},
		{"options reordered", ptr(sel("a", "b")), sel("b", "a"), true},
		{"options unchanged", ptr(sel("a", "b")), sel("a", "b"), false},
		{"scale change", ptr(num(NewScale(0, 10, 1), "")), num(NewScale(0, 5, 1), ""), true},
		{"scale cleared", ptr(num(NewScale(0, 10, 1), "")), num(nil, ""), true},
		{"scale unchanged", ptr(num(NewScale(0, 10, 1), "")), num(NewScale(0, 10, 1), ""), false},
		{"preset change", ptr(num(nil, "pain_0_10")), num(nil, "mood_1_5"), true},
		{"archive toggle is not a bump", &Question{Type: TypeText}, Question{Type: TypeText, Archived: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsVersionBump(tc.old, tc.next); got != tc.want {
				t.Errorf("NeedsVersionBump = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuestionUnmarshalLooseArchived(t *testing.T) {
	cases := []struct {
		name string
		json string
		want bool
	}{
		{"bool true", `{"id":"q1","archived":true}`, true},
		{"bool false", `{"id":"q1","archived":false}`, false},
		{"number one", `{"id":"q1","archived":1}`, true},
		{"number zero", `{"id":"q1","archived":0}`, false},
		{"string true", `{"id":"q1","archived":"true"}`, true},
		{"string false", `{"id":"q1","archived":"false"}`, false},
		{"null", `{"id":"q1","archived":null}`, false},
		{"absent", `{"id":"q1"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var q Question
			if err := json.Unmarshal([]byte(tc.json), &q); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tc.json, err)
			}
			if q.Archived != tc.want {
				t.Errorf("Archived = %v, want %v", q.Archived, tc.want)
			}
		})
	}
}

func ptr(q Question) *Question { return &q }
