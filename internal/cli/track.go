package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/query"
	"github.com/julianstephens/trackdown/internal/utils"
)

type TrackCmd struct {
	Date    string   `help:"Entry date (YYYY-MM-DD). Defaults to today." short:"d"`
	Comment string   `help:"Free-text comment for the day."`
	Set     []string `help:"Answer non-interactively as 'question=value'. Repeatable; skips the form." short:"s"`
	Entry   string   `help:"Id of an existing entry to edit (see 'entries list --ids')."`
	Yes     bool     `help:"Overwrite an existing entry for the date without asking." short:"y"`
}

func (c *TrackCmd) Run(ctx *Context) error {
	questions, _, err := ctx.Store.LoadQuestions()
	if err != nil {
		return err
	}
	active := query.ActiveQuestions(questions)
	if len(active) == 0 {
		fmt.Println("No active questions. Add one with 'trackdown question add'.")
		return nil
	}

	entries, rev, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	// Editing a vanished entry falls back to creating a fresh one; the id the
	// user held is simply gone and there is nothing safer to do with it.
	var editing *models.Entry
	if c.Entry != "" {
		for i := range entries {
			if entries[i].ID == c.Entry {
				editing = &entries[i]
				break
			}
		}
		if editing == nil {
			logger.Warn("entry to edit no longer exists, creating a new one", "id", c.Entry)
			fmt.Printf("Entry %s no longer exists; recording a new entry instead.\n", c.Entry)
		}
	}

	date := strings.TrimSpace(c.Date)
	if date == "" {
		if editing != nil {
			date = editing.Date
		} else {
			date = utils.Today()
		}
	}
	if err := utils.ValidateDate(date); err != nil {
		return err
	}

	comment := c.Comment
	if comment == "" && editing != nil {
		comment = editing.Comment
	}

	var prior map[string]models.Value
	if editing != nil {
		prior = editing.Responses
	}

	var responses map[string]models.Value
	if len(c.Set) > 0 {
		responses, err = responsesFromFlags(active, prior, c.Set)
	} else {
		responses, comment, err = responsesFromForm(active, prior, comment, date)
	}
	if err != nil {
		return err
	}

	meta := make(map[string]models.ResponseMeta, len(active))
	if editing != nil {
		for k, m := range editing.Meta {
			meta[k] = m
		}
	}
	for _, q := range active {
		meta[q.ID] = models.ResponseMeta{VersionAtTime: q.Version}
	}

	if editing != nil {
		editing.Date = date
		editing.Responses = responses
		editing.Meta = meta
		editing.Comment = comment
		editing.UpdatedAt = utils.NowStamp()
		if err := ctx.Store.SaveEntries(entries, rev); err != nil {
			return err
		}
		fmt.Printf("Updated entry for %s.\n", date)
		return nil
	}

	// One entry per day: recording a date that already has one replaces it,
	// after asking.
	for i := range entries {
		if entries[i].Date != date {
			continue
		}
		if !c.Yes {
			ok, cerr := confirm(fmt.Sprintf("An entry for %s already exists. Overwrite it?", date))
			if cerr != nil {
				return cerr
			}
			if !ok {
				fmt.Println("Nothing recorded.")
				return nil
			}
		}
		entries[i].Responses = responses
		entries[i].Meta = meta
		entries[i].Comment = comment
		entries[i].UpdatedAt = utils.NowStamp()
		if err := ctx.Store.SaveEntries(entries, rev); err != nil {
			return err
		}
		fmt.Printf("Replaced entry for %s.\n", date)
		return nil
	}

	entry := models.NormaliseEntry(models.Entry{
		Date:      date,
		Responses: responses,
		Meta:      meta,
		Comment:   comment,
	})
	entries = append(entries, entry)
	if err := ctx.Store.SaveEntries(entries, rev); err != nil {
		return err
	}

	logger.Info("entry recorded", "date", date, "responses", len(responses))
	fmt.Printf("Recorded entry for %s.\n", date)
	return nil
}

// responsesFromFlags builds the response map from --set pairs. Every active
// question gets a slot; unanswered ones record their type's empty value, the
// same as leaving a form field blank.
func responsesFromFlags(active []models.Question, prior map[string]models.Value, pairs []string) (map[string]models.Value, error) {
	responses := make(map[string]models.Value, len(active))
	for _, q := range active {
		if v, ok := prior[q.ID]; ok {
			responses[q.ID] = v
			continue
		}
		empty, err := parseResponseValue(q, "")
		if err != nil {
			return nil, err
		}
		responses[q.ID] = empty
	}

	for _, pair := range pairs {
		ref, raw, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set %q: expected 'question=value'", pair)
		}
		i := findQuestion(active, strings.TrimSpace(ref))
		if i < 0 {
			return nil, fmt.Errorf("no active question matches %q", ref)
		}
		q := active[i]
		v, err := parseResponseValue(q, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", q.Text, err)
		}
		responses[q.ID] = v
	}
	return responses, nil
}

// responsesFromForm runs the interactive daily form. Prior values (when
// editing or re-recording a day) prefill the fields.
func responsesFromForm(active []models.Question, prior map[string]models.Value, comment, date string) (map[string]models.Value, string, error) {
	texts := make(map[string]*string, len(active))
	multis := make(map[string]*[]string, len(active))

	fields := make([]huh.Field, 0, len(active)+1)
	for _, q := range active {
		q := q
		title := q.Text
		if q.Units != "" {
			title += " (" + q.Units + ")"
		}

		switch q.Type {
		case models.TypeBoolean:
			s := priorBoolString(prior[q.ID])
			texts[q.ID] = &s
			fields = append(fields, huh.NewSelect[string]().
				Title(title).
				Description(q.HelpText).
				Options(
					huh.NewOption("Not answered", ""),
					huh.NewOption("Yes", "true"),
					huh.NewOption("No", "false"),
				).
				Value(&s))

		case models.TypeSelect:
			sel := append([]string(nil), prior[q.ID].Multi()...)
			multis[q.ID] = &sel
			fields = append(fields, huh.NewMultiSelect[string]().
				Title(title).
				Description(q.HelpText).
				Options(huh.NewOptions(q.Options...)...).
				Value(&sel))

		default:
			s := prior[q.ID].Text()
			texts[q.ID] = &s
			input := huh.NewInput().
				Title(title).
				Description(inputDescription(q)).
				Value(&s).
				Validate(func(raw string) error {
					_, err := parseResponseValue(q, raw)
					return err
				})
			fields = append(fields, input)
		}
	}

	fields = append(fields, huh.NewText().
		Title("Comment").
		Description("Anything notable about "+date+".").
		Value(&comment))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, "", err
	}

	responses := make(map[string]models.Value, len(active))
	for _, q := range active {
		if sel, ok := multis[q.ID]; ok {
			v, err := parseResponseValue(q, strings.Join(*sel, ", "))
			if err != nil {
				return nil, "", err
			}
			responses[q.ID] = v
			continue
		}
		v, err := parseResponseValue(q, *texts[q.ID])
		if err != nil {
			return nil, "", err
		}
		responses[q.ID] = v
	}
	return responses, comment, nil
}

func priorBoolString(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func inputDescription(q models.Question) string {
	parts := []string{}
	if q.Type == models.TypeNumber && q.Scale != nil {
		parts = append(parts, scaleSummary(q.Scale))
	}
	if q.Type == models.TypeDate {
		parts = append(parts, "YYYY-MM-DD")
	}
	if q.Type == models.TypeTime {
		parts = append(parts, "HH:MM")
	}
	if q.HelpText != "" {
		parts = append(parts, q.HelpText)
	}
	return strings.Join(parts, ". ")
}
