package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/storage"
	"github.com/julianstephens/trackdown/internal/utils"
)

// Context is passed to every command's Run method.
type Context struct {
	Store storage.Provider
	Debug bool
}

// findQuestion resolves a question reference (id, or case-insensitive label)
// against the collection. Returns the index or -1.
func findQuestion(questions []models.Question, ref string) int {
	for i, q := range questions {
		if q.ID == ref {
			return i
		}
	}
	ref = strings.ToLower(strings.TrimSpace(ref))
	for i, q := range questions {
		if strings.ToLower(q.Text) == ref {
			return i
		}
	}
	return -1
}

// parseResponseValue interprets raw CLI input as a value for the question's
// current type. Empty input means unanswered.
func parseResponseValue(q models.Question, raw string) (models.Value, error) {
	switch q.Type {
	case models.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
			return models.NullValue(), nil
		case "true", "yes", "y":
			return models.BoolValue(true), nil
		case "false", "no", "n":
			return models.BoolValue(false), nil
		default:
			return models.Value{}, fmt.Errorf("%q: expected yes or no", raw)
		}

	case models.TypeSelect:
		if strings.TrimSpace(raw) == "" {
			return models.MultiValue([]string{}), nil
		}
		chosen := models.ParseTags(raw)
		for _, opt := range chosen {
			if !containsString(q.Options, opt) {
				return models.Value{}, fmt.Errorf("%q is not an option of %q (options: %s)",
					opt, q.Text, strings.Join(q.Options, ", "))
			}
		}
		return models.MultiValue(chosen), nil

	case models.TypeNumber:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return models.TextValue(""), nil
		}
		if err := validateNumber(q, raw); err != nil {
			return models.Value{}, err
		}
		return models.TextValue(raw), nil

	case models.TypeDate:
		raw = strings.TrimSpace(raw)
		if raw != "" {
			if err := utils.ValidateDate(raw); err != nil {
				return models.Value{}, err
			}
		}
		return models.TextValue(raw), nil

	case models.TypeTime:
		raw = strings.TrimSpace(raw)
		if raw != "" {
			if err := utils.ValidateTime(raw); err != nil {
				return models.Value{}, err
			}
		}
		return models.TextValue(raw), nil

	default:
		return models.TextValue(raw), nil
	}
}

func validateNumber(q models.Question, raw string) error {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	if q.Scale != nil {
		if q.Scale.Min != nil && n < *q.Scale.Min {
			return fmt.Errorf("%v is below the minimum of %v", n, *q.Scale.Min)
		}
		if q.Scale.Max != nil && n > *q.Scale.Max {
			return fmt.Errorf("%v is above the maximum of %v", n, *q.Scale.Max)
		}
	}
	return nil
}

func containsString(vs []string, want string) bool {
	for _, v := range vs {
		if v == want {
			return true
		}
	}
	return false
}

// confirm asks a yes/no question, defaulting to no.
func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().Title(title).Value(&ok).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// describeQuestion renders a one-line summary for list output.
func describeQuestion(q models.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s", q.Text, q.Type)
	if q.Type == models.TypeSelect && len(q.Options) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(q.Options, ", "))
	}
	b.WriteString(")")
	if q.Type == models.TypeNumber {
		if q.Preset != "" {
			fmt.Fprintf(&b, " [preset %s]", q.Preset)
		}
		if q.Scale != nil {
			b.WriteString(" [" + scaleSummary(q.Scale) + "]")
		}
		if q.Units != "" {
			fmt.Fprintf(&b, " (%s)", q.Units)
		}
	}
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, " #%s", strings.Join(q.Tags, " #"))
	}
	if q.Version > 1 {
		fmt.Fprintf(&b, " v%d", q.Version)
	}
	return b.String()
}

func scaleSummary(s *models.Scale) string {
	part := func(f *float64) string {
		if f == nil {
			return "?"
		}
		return strconv.FormatFloat(*f, 'g', -1, 64)
	}
	out := part(s.Min) + ".." + part(s.Max)
	if s.Step != nil {
		out += " step " + part(s.Step)
	}
	return out
}
