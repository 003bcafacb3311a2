package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/trackdown/internal/models"
)

// Series is one line of a comparison: a label and one point per entry date.
// A nil point is a gap (no interpretable value for that date).
type Series struct {
	Label string
	// Presence marks a 0/1 option-presence series (select questions), which
	// charts plot against a secondary axis.
	Presence bool
	Points   []*float64
}

// CompareData is everything a chart needs to plot two questions against each
// other: date labels plus one or more series per question. The data is
// finished; consumers perform no normalisation of their own.
type CompareData struct {
	Labels []string
	Series []Series
}

// NumericPoint coerces a recorded value onto the shared numeric axis:
// booleans map to 10/0 so they can sit alongside 0-10 scales, text parses as
// a number, anything else is a gap.
func NumericPoint(v models.Value) *float64 {
	switch v.Kind() {
	case models.KindBool:
		n := 0.0
		if v.Bool() {
			n = 10
		}
		return &n
	case models.KindText:
		s := strings.TrimSpace(v.Text())
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

// BuildCompare assembles comparison series for two questions over an already
// filtered and sorted entry sequence. Select questions expand to one 0/1
// presence series per option; an option subset (nil means all) restricts
// which options are included. Other types produce a single numeric series.
func BuildCompare(entries []models.Entry, qa, qb models.Question, optsA, optsB []string) (CompareData, error) {
	if qa.ID == "" || qb.ID == "" {
		return CompareData{}, fmt.Errorf("two questions are required")
	}
	if qa.ID == qb.ID {
		return CompareData{}, fmt.Errorf("please choose two different questions")
	}

	data := CompareData{Labels: make([]string, len(entries))}
	for i, e := range entries {
		data.Labels[i] = e.Date
	}

	data.Series = append(data.Series, questionSeries(entries, qa, optsA)...)
	data.Series = append(data.Series, questionSeries(entries, qb, optsB)...)
	return data, nil
}

func questionSeries(entries []models.Entry, q models.Question, opts []string) []Series {
	if q.Type == models.TypeSelect && len(q.Options) > 0 {
		included := optionSet(opts)
		series := make([]Series, 0, len(q.Options))
		for _, opt := range q.Options {
			if included != nil && !included[opt] {
				continue
			}
			s := Series{
				Label:    q.Label() + ": " + opt,
				Presence: true,
				Points:   make([]*float64, len(entries)),
			}
			for i, e := range entries {
				n := 0.0
				if contains(e.Responses[q.ID].Multi(), opt) {
					n = 1
				}
				s.Points[i] = &n
			}
			series = append(series, s)
		}
		return series
	}

	s := Series{Label: q.Label(), Points: make([]*float64, len(entries))}
	for i, e := range entries {
		s.Points[i] = NumericPoint(e.Responses[q.ID])
	}
	return []Series{s}
}

func optionSet(opts []string) map[string]bool {
	if opts == nil {
		return nil
	}
	set := make(map[string]bool, len(opts))
	for _, o := range opts {
		set[o] = true
	}
	return set
}

func contains(vs []string, want string) bool {
	for _, v := range vs {
		if v == want {
			return true
		}
	}
	return false
}
