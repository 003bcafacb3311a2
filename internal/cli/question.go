package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/models"
)

type QuestionCmd struct {
	Add       QuestionAddCmd       `cmd:"" help:"Add a question to the daily form."`
	List      QuestionListCmd      `cmd:"" help:"List questions."`
	Edit      QuestionEditCmd      `cmd:"" help:"Edit a question."`
	Archive   QuestionArchiveCmd   `cmd:"" help:"Archive a question (hide it from the daily form, keep its data)."`
	Unarchive QuestionUnarchiveCmd `cmd:"" help:"Restore an archived question to the daily form."`
	Delete    QuestionDeleteCmd    `cmd:"" help:"Delete a question and its recorded answers."`
	Move      QuestionMoveCmd      `cmd:"" help:"Reorder a question on the daily form."`
	Presets   QuestionPresetsCmd   `cmd:"" help:"List the built-in number presets."`
}

type QuestionAddCmd struct {
	Text string `arg:"" help:"Question label, e.g. \"Did you sleep well?\"."`

	Type        string  `help:"Answer type: text, boolean, number, date, time, or select." default:"text"`
	Options     string  `help:"Comma-separated options (select questions only)."`
	Tags        string  `help:"Comma-separated tags."`
	Preset      string  `help:"Built-in number preset key (see 'question presets')."`
	Min         *string `help:"Minimum value (number questions)."`
	Max         *string `help:"Maximum value (number questions)."`
	Step        *string `help:"Input step (number questions)."`
	Units       string  `help:"Unit label shown next to the input (number questions)."`
	Help        string  `help:"Hint shown under the input." name:"hint"`
	Descriptors string  `help:"Per-value descriptor text (number questions)."`
}

func (c *QuestionAddCmd) Run(ctx *Context) error {
	qtype := models.QuestionType(strings.TrimSpace(c.Type))
	if !models.ValidType(qtype) {
		return fmt.Errorf("unknown question type %q (valid: %s)", c.Type, joinTypes())
	}
	if c.Preset != "" {
		if _, ok := models.NumberPresets[c.Preset]; !ok {
			return fmt.Errorf("unknown preset %q (see 'trackdown question presets')", c.Preset)
		}
	}

	questions, rev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}

	q := models.NormaliseQuestion(models.Question{
		Text:           c.Text,
		Type:           qtype,
		Options:        models.ParseTags(c.Options),
		Tags:           models.ParseTags(c.Tags),
		Preset:         c.Preset,
		Units:          c.Units,
		HelpText:       c.Help,
		DescriptorText: c.Descriptors,
		Scale:          scaleFromFlags(c.Min, c.Max, c.Step),
	})
	if q.Text == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if q.Type == models.TypeSelect && len(q.Options) == 0 {
		return fmt.Errorf("select questions need at least one option (use --options)")
	}

	questions = append(questions, q)
	if err := ctx.Store.SaveQuestions(questions, rev); err != nil {
		return err
	}

	logger.Info("question added", "id", q.ID, "type", q.Type)
	fmt.Printf("Added question: %s\n", describeQuestion(q))
	fmt.Printf("  id: %s\n", q.ID)
	return nil
}

type QuestionListCmd struct {
	All bool `help:"Include archived questions." short:"a"`
	IDs bool `help:"Show question ids."`
}

func (c *QuestionListCmd) Run(ctx *Context) error {
	questions, _, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Println("No questions yet. Add one with 'trackdown question add'.")
		return nil
	}

	shown := 0
	for i, q := range questions {
		if q.Archived && !c.All {
			continue
		}
		marker := " "
		if q.Archived {
			marker = "A"
		}
		fmt.Printf("%s %2d. %s\n", marker, i+1, describeQuestion(q))
		if c.IDs {
			fmt.Printf("       id: %s\n", q.ID)
		}
		shown++
	}

	if hidden := len(questions) - shown; hidden > 0 {
		fmt.Printf("(%d archived, use --all to show)\n", hidden)
	}
	return nil
}

type QuestionEditCmd struct {
	Ref string `arg:"" help:"Question id or label."`

	Text        *string `help:"New label."`
	Type        *string `help:"New answer type."`
	Options     *string `help:"New comma-separated options (select questions)."`
	Tags        *string `help:"New comma-separated tags."`
	Preset      *string `help:"New preset key, or empty to clear."`
	Min         *string `help:"New minimum, or empty to clear."`
	Max         *string `help:"New maximum, or empty to clear."`
	Step        *string `help:"New step, or empty to clear."`
	Units       *string `help:"New unit label."`
	Help        *string `help:"New hint." name:"hint"`
	Descriptors *string `help:"New descriptor text."`
}

func (c *QuestionEditCmd) Run(ctx *Context) error {
	questions, rev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	i := findQuestion(questions, c.Ref)
	if i < 0 {
		return fmt.Errorf("no question matches %q", c.Ref)
	}
	old := questions[i]
	next := old

	if c.Text != nil {
		next.Text = *c.Text
	}
	if c.Type != nil {
		t := models.QuestionType(strings.TrimSpace(*c.Type))
		if !models.ValidType(t) {
			return fmt.Errorf("unknown question type %q (valid: %s)", *c.Type, joinTypes())
		}
		next.Type = t
	}
	if c.Options != nil {
		next.Options = models.ParseTags(*c.Options)
	}
	if c.Tags != nil {
		next.Tags = models.ParseTags(*c.Tags)
	}
	if c.Preset != nil {
		p := strings.TrimSpace(*c.Preset)
		if p != "" {
			if _, ok := models.NumberPresets[p]; !ok {
				return fmt.Errorf("unknown preset %q (see 'trackdown question presets')", p)
			}
		}
		next.Preset = p
	}
	if c.Min != nil || c.Max != nil || c.Step != nil {
		s := newScaleFields(next.Scale)
		if c.Min != nil {
			s.min = *c.Min
		}
		if c.Max != nil {
			s.max = *c.Max
		}
		if c.Step != nil {
			s.step = *c.Step
		}
		next.Scale = s.toScale()
	}
	if c.Units != nil {
		next.Units = *c.Units
	}
	if c.Help != nil {
		next.HelpText = *c.Help
	}
	if c.Descriptors != nil {
		next.DescriptorText = *c.Descriptors
	}

	next = models.NormaliseQuestion(next)
	if next.Text == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if next.Type == models.TypeSelect && len(next.Options) == 0 {
		return fmt.Errorf("select questions need at least one option (use --options)")
	}

	if models.NeedsVersionBump(&old, next) {
		next.Version = old.Version + 1
		if next.Version < 2 {
			next.Version = 2
		}
		fmt.Printf("The question's meaning changed; bumping it to version %d so older answers stay attributable.\n", next.Version)
	}

	questions[i] = next
	if err := ctx.Store.SaveQuestions(questions, rev); err != nil {
		return err
	}

	logger.Info("question edited", "id", next.ID, "version", next.Version)
	fmt.Printf("Updated question: %s\n", describeQuestion(next))
	return nil
}

type QuestionArchiveCmd struct {
	Ref string `arg:"" help:"Question id or label."`
}

func (c *QuestionArchiveCmd) Run(ctx *Context) error {
	return setArchived(ctx, c.Ref, true)
}

type QuestionUnarchiveCmd struct {
	Ref string `arg:"" help:"Question id or label."`
}

func (c *QuestionUnarchiveCmd) Run(ctx *Context) error {
	return setArchived(ctx, c.Ref, false)
}

func setArchived(ctx *Context, ref string, archived bool) error {
	questions, rev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	i := findQuestion(questions, ref)
	if i < 0 {
		return fmt.Errorf("no question matches %q", ref)
	}
	if questions[i].Archived == archived {
		fmt.Printf("%q is already %s.\n", questions[i].Text, archivedWord(archived))
		return nil
	}

	questions[i].Archived = archived
	if err := ctx.Store.SaveQuestions(questions, rev); err != nil {
		return err
	}
	if archived {
		fmt.Printf("Archived %q.\n", questions[i].Text)
	} else {
		fmt.Printf("Restored %q to the daily form.\n", questions[i].Text)
	}
	if archived {
		fmt.Println("Its recorded answers stay visible in tables and exports.")
	}
	return nil
}

func archivedWord(archived bool) string {
	if archived {
		return "archived"
	}
	return "active"
}

type QuestionDeleteCmd struct {
	Ref string `arg:"" help:"Question id or label."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *QuestionDeleteCmd) Run(ctx *Context) error {
	questions, qrev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	i := findQuestion(questions, c.Ref)
	if i < 0 {
		return fmt.Errorf("no question matches %q", c.Ref)
	}
	target := questions[i]

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete %q and every answer recorded for it?", target.Text))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	questions = append(questions[:i], questions[i+1:]...)
	if err := ctx.Store.SaveQuestions(questions, qrev); err != nil {
		return err
	}

	// Scrub the question's answers out of every entry. Version provenance in
	// meta stays untouched, as do entry ids, dates, and comments.
	entries, erev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}
	touched := 0
	for j := range entries {
		if _, ok := entries[j].Responses[target.ID]; ok {
			delete(entries[j].Responses, target.ID)
			touched++
		}
	}
	if touched > 0 {
		if err := ctx.Store.SaveEntries(entries, erev); err != nil {
			return err
		}
	}

	logger.Info("question deleted", "id", target.ID, "entriesScrubbed", touched)
	fmt.Printf("Deleted %q (answers removed from %d entries).\n", target.Text, touched)
	return nil
}

type QuestionMoveCmd struct {
	Ref  string `arg:"" help:"Question id or label."`
	Up   bool   `help:"Move one position earlier on the form." xor:"dir" required:""`
	Down bool   `help:"Move one position later on the form." xor:"dir"`
}

func (c *QuestionMoveCmd) Run(ctx *Context) error {
	questions, rev, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	i := findQuestion(questions, c.Ref)
	if i < 0 {
		return fmt.Errorf("no question matches %q", c.Ref)
	}

	j := i + 1
	if c.Up {
		j = i - 1
	}
	if j < 0 || j >= len(questions) {
		fmt.Println("Already at the edge of the form.")
		return nil
	}

	questions[i], questions[j] = questions[j], questions[i]
	if err := ctx.Store.SaveQuestions(questions, rev); err != nil {
		return err
	}
	fmt.Printf("Moved %q to position %d.\n", questions[j].Text, j+1)
	return nil
}

type QuestionPresetsCmd struct{}

func (c *QuestionPresetsCmd) Run(ctx *Context) error {
	fmt.Println("Built-in number presets (applied to number questions, your own settings win):")
	for _, key := range models.PresetKeys {
		p := models.NumberPresets[key]
		line := fmt.Sprintf("  %-18s %s", key, scaleSummary(p.Scale))
		if p.Units != "" {
			line += " " + p.Units
		}
		fmt.Println(line)
		if p.HelpText != "" {
			fmt.Printf("  %-18s %s\n", "", p.HelpText)
		}
	}
	return nil
}

func joinTypes() string {
	names := make([]string, len(models.QuestionTypes))
	for i, t := range models.QuestionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// scaleFields bridges string CLI flags and the typed scale: an empty string
// clears a field, anything else must parse as a number.
type scaleFields struct{ min, max, step string }

func newScaleFields(s *models.Scale) scaleFields {
	f := scaleFields{}
	if s == nil {
		return f
	}
	fmtF := func(p *float64) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%g", *p)
	}
	f.min, f.max, f.step = fmtF(s.Min), fmtF(s.Max), fmtF(s.Step)
	return f
}

func (f scaleFields) toScale() *models.Scale {
	parse := func(s string) *float64 {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &n
	}
	return models.NormaliseScale(&models.Scale{
		Min:  parse(f.min),
		Max:  parse(f.max),
		Step: parse(f.step),
	})
}

func scaleFromFlags(min, max, step *string) *models.Scale {
	f := scaleFields{}
	if min != nil {
		f.min = *min
	}
	if max != nil {
		f.max = *max
	}
	if step != nil {
		f.step = *step
	}
	return f.toScale()
}
