package cli

import (
	"fmt"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/pin"
)

type ResetCmd struct {
	Entries   ResetEntriesCmd   `cmd:"" help:"Delete every recorded entry, keeping questions."`
	Questions ResetQuestionsCmd `cmd:"" help:"Delete all questions and their recorded entries."`
	All       ResetAllCmd       `cmd:"" help:"Delete all questions, entries, and the PIN."`
}

// doubleConfirm guards the destructive commands: two explicit yeses, every
// default being no.
func doubleConfirm(what string) (bool, error) {
	ok, err := confirm(fmt.Sprintf("Delete %s? This cannot be undone.", what))
	if err != nil || !ok {
		return false, err
	}
	return confirm("Are you sure?")
}

type ResetEntriesCmd struct {
	Force bool `help:"Skip both confirmation prompts." short:"f"`
}

func (c *ResetEntriesCmd) Run(ctx *Context) error {
	if !c.Force {
		ok, err := doubleConfirm("every recorded entry")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	_, rev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEntries([]models.Entry{}, rev); err != nil {
		return err
	}

	logger.Info("all entries deleted")
	fmt.Println("All entries deleted. Questions were kept.")
	return nil
}

type ResetQuestionsCmd struct {
	Force bool `help:"Skip both confirmation prompts." short:"f"`
}

// Entries without questions are uninterpretable, so deleting all questions
// takes the entries with them.
func (c *ResetQuestionsCmd) Run(ctx *Context) error {
	if !c.Force {
		ok, err := doubleConfirm("all questions and their recorded entries")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	_, qrev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveQuestions([]models.Question{}, qrev); err != nil {
		return err
	}

	_, erev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEntries([]models.Entry{}, erev); err != nil {
		return err
	}

	logger.Info("all questions and entries deleted")
	fmt.Println("All questions and entries deleted.")
	return nil
}

type ResetAllCmd struct {
	Force bool `help:"Skip both confirmation prompts." short:"f"`
}

func (c *ResetAllCmd) Run(ctx *Context) error {
	if !c.Force {
		ok, err := doubleConfirm("all questions, entries, and the PIN")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	_, qrev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveQuestions([]models.Question{}, qrev); err != nil {
		return err
	}

	_, erev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveEntries([]models.Entry{}, erev); err != nil {
		return err
	}

	if err := pin.NewGate(ctx.Store).Remove(); err != nil {
		logger.Warn("failed to remove PIN during reset", "error", err)
	}

	logger.Info("full reset")
	fmt.Println("Everything deleted.")
	return nil
}
