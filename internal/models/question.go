package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported answer types.
type QuestionType string

const (
	TypeText    QuestionType = "text"
	TypeBoolean QuestionType = "boolean"
	TypeNumber  QuestionType = "number"
	TypeDate    QuestionType = "date"
	TypeTime    QuestionType = "time"
	TypeSelect  QuestionType = "select"
)

// QuestionTypes lists the valid types in display order.
var QuestionTypes = []QuestionType{TypeText, TypeBoolean, TypeNumber, TypeDate, TypeTime, TypeSelect}

// ValidType reports whether t names a supported answer type.
func ValidType(t QuestionType) bool {
	for _, k := range QuestionTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Question defines one trackable dimension of daily data. Its id is assigned
// once and never reassigned; version starts at 1 and only increases, bumped
// when the question's meaning changes (see NeedsVersionBump).
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	// Options are meaningful only for select questions but are retained when
	// the type temporarily changes away from select, so a user's option list
	// is not silently lost.
	Options  []string `json:"options,omitempty"`
	Tags     []string `json:"tags"`
	Archived bool     `json:"archived"`
	Version  int      `json:"version"`

	// Number extras.
	Preset         string `json:"preset"`
	Units          string `json:"units"`
	HelpText       string `json:"helpText"`
	DescriptorText string `json:"descriptorText"`
	Scale          *Scale `json:"scale"`
}

// Label renders the question for table headers and exports, marking archived
// questions so historical columns stay recognizable.
func (q Question) Label() string {
	label := q.Text
	if label == "" {
		label = "(untitled)"
	}
	if q.Archived {
		label += " (archived)"
	}
	return label
}

// NormaliseQuestion produces the canonical form of a question from arbitrary
// input: documents from older versions of the tool, imported backups, or
// half-filled form state. It is idempotent.
func NormaliseQuestion(q Question) Question {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}

	q.Text = strings.TrimSpace(q.Text)
	if q.Type == "" {
		q.Type = TypeText
	}

	if q.Type == TypeSelect {
		if q.Options == nil {
			q.Options = []string{}
		} else {
			q.Options = trimFilter(q.Options)
		}
	} else if q.Options != nil {
		// Preserve but don't populate: clean an existing list, never invent one.
		q.Options = trimFilter(q.Options)
	}

	q.Tags = NormaliseTags(q.Tags)

	if q.Version < 1 {
		q.Version = 1
	}

	q.Preset = strings.TrimSpace(q.Preset)
	q.Scale = NormaliseScale(q.Scale)

	return ApplyNumberPreset(q)
}

func trimFilter(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NeedsVersionBump reports whether editing old into new changes the question's
// meaning enough that historical values would be ambiguous without recorded
// version provenance. It only detects; the caller increments Version.
//
// Triggers: a type change; any reorder or membership change of a select
// question's options; a preset or scale change on a number question (unset
// fields count as distinct from any number, including 0).
func NeedsVersionBump(old *Question, next Question) bool {
	if old == nil {
		return false
	}

	oldType := old.Type
	if oldType == "" {
		oldType = TypeText
	}
	newType := next.Type
	if newType == "" {
		newType = TypeText
	}
	if oldType != newType {
		return true
	}

	if oldType == TypeSelect {
		if strings.Join(old.Options, "||") != strings.Join(next.Options, "||") {
			return true
		}
	}

	if oldType == TypeNumber {
		if old.Preset != next.Preset {
			return true
		}
		if NormaliseScale(old.Scale).Key() != NormaliseScale(next.Scale).Key() {
			return true
		}
	}

	return false
}

// UnmarshalJSON tolerates the loose shapes older documents and external
// backups use: numeric ids, tags as a comma string, string versions, and
// scale fields as numeric strings.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             json.RawMessage `json:"id"`
		Text           json.RawMessage `json:"text"`
		Type           string          `json:"type"`
		Options        json.RawMessage `json:"options"`
		Tags           json.RawMessage `json:"tags"`
		Archived       json.RawMessage `json:"archived"`
		Version        json.RawMessage `json:"version"`
		Preset         json.RawMessage `json:"preset"`
		Units          json.RawMessage `json:"units"`
		HelpText       json.RawMessage `json:"helpText"`
		DescriptorText json.RawMessage `json:"descriptorText"`
		Scale          json.RawMessage `json:"scale"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.ID = rawText(raw.ID)
	q.Text = rawText(raw.Text)
	q.Type = QuestionType(raw.Type)
	q.Options = rawStrings(raw.Options)
	q.Tags = rawStrings(raw.Tags)
	q.Archived = rawBool(raw.Archived)
	q.Version = rawInt(raw.Version)
	q.Preset = rawText(raw.Preset)
	q.Units = rawText(raw.Units)
	q.HelpText = rawText(raw.HelpText)
	q.DescriptorText = rawText(raw.DescriptorText)
	q.Scale = scaleFromRaw(raw.Scale)

	return nil
}
