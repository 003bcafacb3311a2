package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/query"
)

type EntriesCmd struct {
	List   EntriesListCmd   `cmd:"" default:"withargs" help:"List recorded entries."`
	Delete EntriesDeleteCmd `cmd:"" help:"Delete an entry."`
}

type EntriesListCmd struct {
	Timeframe string `help:"\"all\" or a number of days back from today." default:"all" short:"t"`
	IDs       bool   `help:"Show entry ids."`
	Active    bool   `help:"Hide archived questions even when they have data."`
}

func (c *EntriesListCmd) Run(ctx *Context) error {
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

	filtered := query.FilterEntries(entries, tf, time.Now())
	if len(filtered) == 0 {
		fmt.Printf("No entries (%s).\n", tf)
		return nil
	}

	policy := query.ActiveWithHistory
	if c.Active {
		policy = query.ActiveOnly
	}
	shown := query.QuestionsForView(questions, filtered, policy)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "Date")
	if c.IDs {
		fmt.Fprint(w, "\tId")
	}
	for _, q := range shown {
		fmt.Fprintf(w, "\t%s", q.Label())
	}
	fmt.Fprintln(w, "\tComment")

	for _, e := range filtered {
		fmt.Fprint(w, e.Date)
		if c.IDs {
			fmt.Fprintf(w, "\t%s", e.ID)
		}
		for _, q := range shown {
			fmt.Fprintf(w, "\t%s", e.Responses[q.ID].Display())
		}
		fmt.Fprintf(w, "\t%s\n", e.Comment)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d entries, %d%% complete (%s).\n",
		len(filtered), query.CompletionRate(filtered, shown), tf)
	return nil
}

type EntriesDeleteCmd struct {
	Ref string `arg:"" help:"Entry id or date (YYYY-MM-DD)."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *EntriesDeleteCmd) Run(ctx *Context) error {
	entries, rev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	i := -1
	for j, e := range entries {
		if e.ID == c.Ref || e.Date == c.Ref {
			i = j
			break
		}
	}
	if i < 0 {
		return fmt.Errorf("no entry matches %q", c.Ref)
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete the entry for %s?", entries[i].Date))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	date := entries[i].Date
	entries = append(entries[:i], entries[i+1:]...)
	if err := ctx.Store.SaveEntries(entries, rev); err != nil {
		return err
	}

	logger.Info("entry deleted", "date", date)
	fmt.Printf("Deleted the entry for %s.\n", date)
	return nil
}
