package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/query"
)

type CompareCmd struct {
	A string `arg:"" help:"First question (id or label)."`
	B string `arg:"" help:"Second question (id or label)."`

	Timeframe string `help:"\"all\" or a number of days back from today." default:"30" short:"t"`
	OptionsA  string `help:"Comma-separated option subset for the first question (select questions)."`
	OptionsB  string `help:"Comma-separated option subset for the second question (select questions)."`
}

func (c *CompareCmd) Run(ctx *Context) error {
	tf, err := query.ParseTimeframe(c.Timeframe)
	if err != nil {
		return err
	}

	questions, _, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	entries, _, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	ia := findQuestion(questions, c.A)
	if ia < 0 {
		return fmt.Errorf("no question matches %q", c.A)
	}
	ib := findQuestion(questions, c.B)
	if ib < 0 {
		return fmt.Errorf("no question matches %q", c.B)
	}

	filtered := query.FilterEntries(entries, tf, time.Now())
	if len(filtered) == 0 {
		fmt.Printf("No entries to compare (%s).\n", tf)
		return nil
	}

	data, err := query.BuildCompare(filtered, questions[ia], questions[ib],
		optionSubset(c.OptionsA), optionSubset(c.OptionsB))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "Date")
	for _, s := range data.Series {
		fmt.Fprintf(w, "\t%s", s.Label)
	}
	fmt.Fprintln(w)

	for i, label := range data.Labels {
		fmt.Fprint(w, label)
		for _, s := range data.Series {
			fmt.Fprintf(w, "\t%s", pointString(s.Points[i]))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nYes/No answers plot as 10/0; option columns show 1 when the option was chosen.")
	return nil
}

// optionSubset distinguishes "flag not given" (nil, all options) from an
// explicit list.
func optionSubset(raw string) []string {
	if raw == "" {
		return nil
	}
	return models.ParseTags(raw)
}

func pointString(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}
