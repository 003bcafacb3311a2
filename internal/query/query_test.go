package query

import (
	"testing"
	"time"

	"github.com/julianstephens/trackdown/internal/models"
)

func entry(date string, responses map[string]models.Value) models.Entry {
	return models.Entry{ID: "e-" + date, Date: date, Responses: responses}
}

func TestParseTimeframe(t *testing.T) {
	cases := []struct {
		in      string
		want    Timeframe
		wantErr bool
	}{
		{"all", AllTime(), false},
		{"", AllTime(), false},
		{"ALL", AllTime(), false},
		{"7", LastDays(7), false},
		{"0", Timeframe{}, true},
		{"-3", Timeframe{}, true},
		{"week", Timeframe{}, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeframe(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeframe(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseTimeframe(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestFilterEntriesWindow(t *testing.T) {
	entries := []models.Entry{
		entry("2024-01-10", nil),
		entry("2024-01-07", nil),
		entry("2024-01-08", nil),
		entry("2024-01-09", nil),
		entry("2024-01-01", nil),
	}
	today := time.Date(2024, 1, 10, 15, 30, 0, 0, time.Local)

	got := FilterEntries(entries, LastDays(3), today)
	if len(got) != 3 {
		t.Fatalf("window = %+v", got)
	}
	// The window is [today-(days-1), today] inclusive, sorted ascending.
	for i, want := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		if got[i].Date != want {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Date, want)
		}
	}

	got = FilterEntries(entries, LastDays(1), today)
	if len(got) != 1 || got[0].Date != "2024-01-10" {
		t.Errorf("last 1 day = %+v", got)
	}
}

func TestFilterEntriesAllKeepsUnparseable(t *testing.T) {
	entries := []models.Entry{
		entry("garbage", nil),
		entry("2024-01-02", nil),
	}
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	all := FilterEntries(entries, AllTime(), today)
	if len(all) != 2 {
		t.Errorf("all should keep unparseable dates: %+v", all)
	}

	windowed := FilterEntries(entries, LastDays(30), today)
	if len(windowed) != 1 || windowed[0].Date != "2024-01-02" {
		t.Errorf("window should drop unparseable dates: %+v", windowed)
	}
}

func TestSortByDateStable(t *testing.T) {
	entries := []models.Entry{
		{ID: "b", Date: "2024-01-02"},
		{ID: "a", Date: "2024-01-01"},
		{ID: "c", Date: "2024-01-02"},
	}
	SortByDate(entries)
	if entries[0].ID != "a" || entries[1].ID != "b" || entries[2].ID != "c" {
		t.Errorf("order = %s %s %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestQuestionsForView(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Text: "Active"},
		{ID: "q2", Text: "Archived with data", Archived: true},
		{ID: "q3", Text: "Archived without data", Archived: true},
	}
	entries := []models.Entry{
		entry("2024-01-02", map[string]models.Value{"q2": models.TextValue("x")}),
	}

	got := QuestionsForView(questions, entries, ActiveWithHistory)
	if len(got) != 2 || got[0].ID != "q1" || got[1].ID != "q2" {
		t.Errorf("ActiveWithHistory = %+v", got)
	}

	got = QuestionsForView(questions, entries, ActiveOnly)
	if len(got) != 1 || got[0].ID != "q1" {
		t.Errorf("ActiveOnly = %+v", got)
	}
}

func TestCompletionRate(t *testing.T) {
	questions := []models.Question{{ID: "q1"}, {ID: "q2"}}
	entries := []models.Entry{
		entry("2024-01-01", map[string]models.Value{
			"q1": models.BoolValue(false), // false counts as answered
			"q2": models.TextValue(""),    // blank does not
		}),
		entry("2024-01-02", map[string]models.Value{
			"q1": models.TextValue("0"), // "0" counts as answered
		}),
	}

	if got := CompletionRate(entries, questions); got != 50 {
		t.Errorf("CompletionRate = %d, want 50", got)
	}
	if got := CompletionRate(nil, questions); got != 0 {
		t.Errorf("no entries = %d, want 0", got)
	}
	if got := CompletionRate(entries, nil); got != 0 {
		t.Errorf("no questions = %d, want 0", got)
	}
}

func TestSummarise(t *testing.T) {
	questions := []models.Question{{ID: "q1"}}
	today := time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)
	entries := []models.Entry{
		entry("2024-01-31", map[string]models.Value{"q1": models.TextValue("x")}),
		entry("2024-01-26", nil),
		entry("2024-01-01", nil),
	}

	got := Summarise(entries, questions, []int{7, 30}, today)
	if len(got) != 2 {
		t.Fatalf("summaries = %+v", got)
	}
	if got[0].Window != 7 || got[0].Entries != 2 {
		t.Errorf("7-day = %+v", got[0])
	}
	if got[1].Window != 30 || got[1].Entries != 2 {
		t.Errorf("30-day = %+v", got[1])
	}
	if got[0].Completion != 50 {
		t.Errorf("7-day completion = %d, want 50", got[0].Completion)
	}
}
