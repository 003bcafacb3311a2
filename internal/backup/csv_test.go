package backup

import (
	"strings"
	"testing"

	"github.com/julianstephens/trackdown/internal/models"
)

func TestCSV(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Text: "Slept well", Type: models.TypeBoolean},
		{ID: "q2", Text: "Symptoms", Type: models.TypeSelect, Options: []string{"headache", "nausea"}},
		{ID: "q3", Text: "Pain", Type: models.TypeNumber},
	}
	entries := []models.Entry{
		{
			Date: "2024-01-02",
			Responses: map[string]models.Value{
				"q1": models.BoolValue(true),
				"q2": models.MultiValue([]string{"headache", "nausea"}),
				"q3": models.TextValue("0"),
			},
			Comment: `felt "ok"`,
		},
		{
			Date:      "2024-01-03",
			Responses: map[string]models.Value{"q1": models.BoolValue(false)},
		},
	}

	got := CSV(questions, entries)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), got)
	}

	if lines[0] != `"Date","Slept well","Symptoms","Pain","Comment"` {
		t.Errorf("header = %s", lines[0])
	}
	if lines[1] != `"2024-01-02","Yes","headache, nausea","0","felt ""ok"""` {
		t.Errorf("row 1 = %s", lines[1])
	}
	if lines[2] != `"2024-01-03","No","","",""` {
		t.Errorf("row 2 = %s", lines[2])
	}
}

func TestCSVArchivedLabel(t *testing.T) {
	questions := []models.Question{{ID: "q1", Text: "Old", Type: models.TypeText, Archived: true}}
	got := CSV(questions, nil)
	if !strings.Contains(got, `"Old (archived)"`) {
		t.Errorf("archived marker missing: %s", got)
	}
}
