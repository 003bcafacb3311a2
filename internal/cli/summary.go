package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/trackdown/internal/constants"
	"github.com/julianstephens/trackdown/internal/query"
)

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *Context) error {
	questions, _, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	entries, _, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	active := query.ActiveQuestions(questions)
	fmt.Printf("%d questions (%d active), %d entries total.\n\n",
		len(questions), len(active), len(entries))

	for _, s := range query.Summarise(entries, active, constants.SummaryWindows, time.Now()) {
		fmt.Printf("Last %d days: %d of %d days recorded, %d%% of answers filled.\n",
			s.Window, s.Entries, s.Window, s.Completion)
	}
	return nil
}
