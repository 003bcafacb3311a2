package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/trackdown/internal/backup"
	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/query"
)

type ExportCmd struct {
	JSON ExportJSONCmd `cmd:"" help:"Export a full JSON backup (questions and entries)."`
	CSV  ExportCSVCmd  `cmd:"" help:"Export entries as a CSV spreadsheet."`
}

type ExportJSONCmd struct {
	Out string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportJSONCmd) Run(ctx *Context) error {
	questions, _, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	entries, _, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	query.SortByDate(entries)
	data, err := backup.MarshalDocument(backup.Export(questions, entries))
	if err != nil {
		return err
	}
	return writeExport(c.Out, append(data, '\n'), len(entries))
}

type ExportCSVCmd struct {
	Out       string `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Timeframe string `help:"\"all\" or a number of days back from today." default:"all" short:"t"`
	Active    bool   `help:"Hide archived questions even when they have data."`
}

func (c *ExportCSVCmd) Run(ctx *Context) error {
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
	policy := query.ActiveWithHistory
	if c.Active {
		policy = query.ActiveOnly
	}
	shown := query.QuestionsForView(questions, filtered, policy)

	csv := backup.CSV(shown, filtered)
	return writeExport(c.Out, []byte(csv+"\n"), len(filtered))
}

func writeExport(out string, data []byte, entries int) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return err
	}
	logger.Info("export written", "path", out, "entries", entries)
	fmt.Fprintf(os.Stderr, "Wrote %d entries to %s\n", entries, out)
	return nil
}
