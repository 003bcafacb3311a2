package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/trackdown/internal/backup"
	"github.com/julianstephens/trackdown/internal/logger"
)

type ImportCmd struct {
	Path string `arg:"" help:"JSON file to import: a backup object or a bare entries array." type:"existingfile"`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	imp, err := backup.Parse(data)
	if err != nil {
		if errors.Is(err, backup.ErrInvalidFormat) {
			return fmt.Errorf("%s: %w", c.Path, err)
		}
		return err
	}

	fmt.Printf("Found %d entries", len(imp.Entries))
	if imp.HasQuestions {
		fmt.Printf(" and %d questions", len(imp.Questions))
	}
	fmt.Println(".")

	if !c.Yes {
		ok, err := confirm("Importing replaces all stored entries (imported questions merge with yours). Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing imported.")
			return nil
		}
	}

	if err := backup.Apply(ctx.Store, imp); err != nil {
		return err
	}

	logger.Info("import applied", "entries", len(imp.Entries), "questions", len(imp.Questions))
	fmt.Println("Import complete.")
	return nil
}
