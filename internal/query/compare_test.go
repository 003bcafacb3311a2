package query

import (
	"testing"

	"github.com/julianstephens/trackdown/internal/models"
)

func TestNumericPoint(t *testing.T) {
	cases := []struct {
		name string
		v    models.Value
		want *float64
	}{
		{"true is 10", models.BoolValue(true), f(10)},
		{"false is 0", models.BoolValue(false), f(0)},
		{"number text", models.TextValue("7.5"), f(7.5)},
		{"zero text", models.TextValue("0"), f(0)},
		{"blank is a gap", models.TextValue(""), nil},
		{"words are a gap", models.TextValue("fine"), nil},
		{"null is a gap", models.NullValue(), nil},
		{"multi is a gap", models.MultiValue([]string{"a"}), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NumericPoint(tc.v)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("NumericPoint = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("NumericPoint = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestBuildCompareValidation(t *testing.T) {
	q := models.Question{ID: "q1", Text: "A"}
	if _, err := BuildCompare(nil, q, q, nil, nil); err == nil {
		t.Error("comparing a question with itself should fail")
	}
	if _, err := BuildCompare(nil, models.Question{}, q, nil, nil); err == nil {
		t.Error("missing question should fail")
	}
}

func TestBuildCompareNumericAndSelect(t *testing.T) {
	pain := models.Question{ID: "pain", Text: "Pain", Type: models.TypeNumber}
	symptoms := models.Question{
		ID: "sym", Text: "Symptoms", Type: models.TypeSelect,
		Options: []string{"headache", "nausea"},
	}
	entries := []models.Entry{
		entry("2024-01-01", map[string]models.Value{
			"pain": models.TextValue("3"),
			"sym":  models.MultiValue([]string{"headache"}),
		}),
		entry("2024-01-02", map[string]models.Value{
			"pain": models.TextValue("not a number"),
			"sym":  models.MultiValue([]string{}),
		}),
	}

	data, err := BuildCompare(entries, pain, symptoms, nil, nil)
	if err != nil {
		t.Fatalf("BuildCompare: %v", err)
	}

	if len(data.Labels) != 2 || data.Labels[0] != "2024-01-01" {
		t.Errorf("labels = %v", data.Labels)
	}
	// One numeric series plus one presence series per option.
	if len(data.Series) != 3 {
		t.Fatalf("series = %d", len(data.Series))
	}

	num := data.Series[0]
	if num.Presence || *num.Points[0] != 3 || num.Points[1] != nil {
		t.Errorf("numeric series = %+v", num)
	}

	head := data.Series[1]
	if head.Label != "Symptoms: headache" || !head.Presence {
		t.Errorf("presence series = %+v", head)
	}
	if *head.Points[0] != 1 || *head.Points[1] != 0 {
		t.Errorf("presence points = %v %v", *head.Points[0], *head.Points[1])
	}
}

func TestBuildCompareOptionSubset(t *testing.T) {
	a := models.Question{ID: "a", Text: "A", Type: models.TypeNumber}
	b := models.Question{
		ID: "b", Text: "B", Type: models.TypeSelect,
		Options: []string{"x", "y", "z"},
	}

	data, err := BuildCompare(nil, a, b, nil, []string{"y"})
	if err != nil {
		t.Fatalf("BuildCompare: %v", err)
	}
	if len(data.Series) != 2 {
		t.Fatalf("series = %d, want numeric + one option", len(data.Series))
	}
	if data.Series[1].Label != "B: y" {
		t.Errorf("subset label = %q", data.Series[1].Label)
	}
}

func TestBuildCompareBooleanSeries(t *testing.T) {
	yes := models.Question{ID: "y", Text: "Slept well", Type: models.TypeBoolean}
	other := models.Question{ID: "o", Text: "Other", Type: models.TypeText}
	entries := []models.Entry{
		entry("2024-01-01", map[string]models.Value{"y": models.BoolValue(true)}),
		entry("2024-01-02", map[string]models.Value{"y": models.BoolValue(false)}),
	}

	data, err := BuildCompare(entries, yes, other, nil, nil)
	if err != nil {
		t.Fatalf("BuildCompare: %v", err)
	}
	s := data.Series[0]
	if *s.Points[0] != 10 || *s.Points[1] != 0 {
		t.Errorf("boolean points = %v %v", *s.Points[0], *s.Points[1])
	}
}

func f(n float64) *float64 { return &n }
