package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/storage"
	"github.com/julianstephens/trackdown/internal/utils"
)

// ExportVersion marks the backup document structure. History: 1 had questions
// and entries, 2 added question versions/meta, 3 added entry comments and
// number presets/units/descriptors.
const ExportVersion = 3

// ErrInvalidFormat is returned when an imported document matches neither
// accepted shape (a bare entries array, or a backup object with an entries
// array). Nothing is mutated when it is returned.
var ErrInvalidFormat = errors.New("invalid file format: expected an entries list or a backup object")

// Document is the JSON backup shape produced by Export and accepted by Parse.
type Document struct {
	ExportVersion int               `json:"exportVersion"`
	ExportedAt    string            `json:"exportedAt"`
	Questions     []models.Question `json:"questions"`
	Entries       []models.Entry    `json:"entries"`
}

// Export builds a backup document from the current collections.
func Export(questions []models.Question, entries []models.Entry) Document {
	return Document{
		ExportVersion: ExportVersion,
		ExportedAt:    utils.NowStamp(),
		Questions:     questions,
		Entries:       entries,
	}
}

// MarshalDocument renders a backup document the way exports have always been
// written: two-space indented JSON.
func MarshalDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Import holds a parsed import: entries always, questions only when the
// source was a backup object that carried them.
type Import struct {
	Entries      []models.Entry
	Questions    []models.Question
	HasQuestions bool
}

// Parse decodes an uploaded document. It is polymorphic over the two accepted
// shapes: a bare array of entry-like objects, or a backup object with an
// `entries` array and an optional `questions` array. Every element is
// normalised. Anything else fails with ErrInvalidFormat.
func Parse(data []byte) (Import, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return Import{}, ErrInvalidFormat
	}

	if trimmed[0] == '[' {
		var entries []models.Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return Import{}, fmt.Errorf("could not read JSON file: %w", err)
		}
		return Import{Entries: normaliseEntries(entries)}, nil
	}
	if trimmed[0] != '{' {
		return Import{}, ErrInvalidFormat
	}

	var doc struct {
		Questions json.RawMessage `json:"questions"`
		Entries   json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Import{}, fmt.Errorf("could not read JSON file: %w", err)
	}

	if len(doc.Entries) == 0 || strings.TrimSpace(string(doc.Entries))[0] != '[' {
		return Import{}, ErrInvalidFormat
	}

	var entries []models.Entry
	if err := json.Unmarshal(doc.Entries, &entries); err != nil {
		return Import{}, fmt.Errorf("could not read JSON file: %w", err)
	}
	imp := Import{Entries: normaliseEntries(entries)}

	if len(doc.Questions) > 0 && strings.TrimSpace(string(doc.Questions))[0] == '[' {
		var questions []models.Question
		if err := json.Unmarshal(doc.Questions, &questions); err != nil {
			return Import{}, fmt.Errorf("could not read JSON file: %w", err)
		}
		imp.HasQuestions = true
		imp.Questions = make([]models.Question, len(questions))
		for i, q := range questions {
			imp.Questions[i] = models.NormaliseQuestion(q)
		}
	}

	return imp, nil
}

func normaliseEntries(entries []models.Entry) []models.Entry {
	norm := make([]models.Entry, len(entries))
	for i, e := range entries {
		norm[i] = models.NormaliseEntry(e)
	}
	return norm
}

// MergeQuestions reconciles imported questions with the current set: keyed by
// id, incoming wins, questions only present locally are preserved. Order is
// the current order with genuinely new questions appended in import order.
func MergeQuestions(current, incoming []models.Question) []models.Question {
	merged := make([]models.Question, len(current))
	index := make(map[string]int, len(current))
	for i, q := range current {
		merged[i] = q
		index[q.ID] = i
	}
	for _, q := range incoming {
		if i, ok := index[q.ID]; ok {
			merged[i] = q
			continue
		}
		index[q.ID] = len(merged)
		merged = append(merged, q)
	}
	return merged
}

// Apply commits a parsed import to the store: questions merge first (so every
// question id an imported entry references resolves against the stored set by
// the time entries land), then entries replace the stored collection
// wholesale. Per-entry conflict resolution is deliberately not attempted.
func Apply(store storage.Provider, imp Import) error {
	if imp.HasQuestions {
		current, rev, err := store.LoadQuestions()
		if err != nil {
			return err
		}
		if err := store.SaveQuestions(MergeQuestions(current, imp.Questions), rev); err != nil {
			return err
		}
	}

	_, rev, err := store.LoadEntries()
	if err != nil {
		return err
	}
	return store.SaveEntries(imp.Entries, rev)
}
