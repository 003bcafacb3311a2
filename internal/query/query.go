package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/utils"
)

// Timeframe selects how far back a view reaches: all history, or the last N
// days including today.
type Timeframe struct {
	days int // 0 means all
}

func AllTime() Timeframe { return Timeframe{} }

func LastDays(n int) Timeframe { return Timeframe{days: n} }

func (tf Timeframe) All() bool { return tf.days == 0 }

func (tf Timeframe) Days() int { return tf.days }

func (tf Timeframe) String() string {
	if tf.All() {
		return "all"
	}
	return fmt.Sprintf("last %d days", tf.days)
}

// ParseTimeframe accepts "all" or a positive day count.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return AllTime(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Timeframe{}, fmt.Errorf("invalid timeframe %q: expected \"all\" or a positive number of days", s)
	}
	return LastDays(n), nil
}

// SortByDate orders entries ascending by date (oldest first) in place; charts
// and tables read chronologically. The sort is stable so same-date entries
// keep their stored order.
func SortByDate(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

// FilterEntries returns entries within the timeframe evaluated as of today,
// sorted ascending by date. A day-count window covers [today-(days-1), today]
// inclusive, so "last 1 day" is just today. Dates parse as local calendar
// dates; an unparseable date is excluded from windowed views but kept in
// "all".
func FilterEntries(entries []models.Entry, tf Timeframe, today time.Time) []models.Entry {
	out := make([]models.Entry, 0, len(entries))

	if tf.All() {
		out = append(out, entries...)
	} else {
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
		start := end.AddDate(0, 0, -(tf.Days() - 1))
		for _, e := range entries {
			d, ok := utils.ParseLocalDate(e.Date)
			if !ok {
				continue
			}
			if d.Before(start) || d.After(end) {
				continue
			}
			out = append(out, e)
		}
	}

	SortByDate(out)
	return out
}

// ViewPolicy decides which questions appear in tables, exports, and charts.
type ViewPolicy int

const (
	// ActiveWithHistory shows active questions plus archived questions that
	// still have recorded data, so historical columns stay visible after
	// archiving. This is the default.
	ActiveWithHistory ViewPolicy = iota
	// ActiveOnly hides archived questions entirely.
	ActiveOnly
)

// QuestionsForView selects the view's question set under the given policy,
// preserving stored order.
func QuestionsForView(questions []models.Question, entries []models.Entry, policy ViewPolicy) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if !q.Archived {
			out = append(out, q)
			continue
		}
		if policy == ActiveWithHistory && hasRecordedData(q.ID, entries) {
			out = append(out, q)
		}
	}
	return out
}

func hasRecordedData(qid string, entries []models.Entry) bool {
	for _, e := range entries {
		if _, ok := e.Responses[qid]; ok {
			return true
		}
	}
	return false
}

// ActiveQuestions returns the questions shown on the daily form.
func ActiveQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if !q.Archived {
			out = append(out, q)
		}
	}
	return out
}

// CompletionRate is the percentage of entry×question slots holding a filled
// value, rounded to the nearest whole percent. Boolean false counts as
// answered.
func CompletionRate(entries []models.Entry, questions []models.Question) int {
	if len(entries) == 0 || len(questions) == 0 {
		return 0
	}
	total := len(entries) * len(questions)
	filled := 0
	for _, e := range entries {
		for _, q := range questions {
			if e.Responses[q.ID].IsFilled() {
				filled++
			}
		}
	}
	return int(float64(filled)/float64(total)*100 + 0.5)
}

// Summary describes one lookback window for the summary cards.
type Summary struct {
	Window     int // days
	Entries    int
	Completion int // percent
}

// Summarise computes entry counts and completion rates for the given lookback
// windows as of today.
func Summarise(entries []models.Entry, questions []models.Question, windows []int, today time.Time) []Summary {
	out := make([]Summary, 0, len(windows))
	for _, days := range windows {
		windowed := FilterEntries(entries, LastDays(days), today)
		out = append(out, Summary{
			Window:     days,
			Entries:    len(windowed),
			Completion: CompletionRate(windowed, questions),
		})
	}
	return out
}
