package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/trackdown/internal/constants"
	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/models"
)

// document is the on-disk shape of the JSON backend: both collections plus the
// PIN digest and per-collection revision counters in a single file.
type document struct {
	Version      int               `json:"version"`
	Questions    []models.Question `json:"questions"`
	Entries      []models.Entry    `json:"entries"`
	PinHash      string            `json:"pinHash,omitempty"`
	QuestionsRev int64             `json:"questionsRev"`
	EntriesRev   int64             `json:"entriesRev"`
}

type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(&document{Version: constants.StoreVersion})
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'trackdown init' first")
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// read re-reads the file on every call so a mutation always starts from the
// latest persisted state. A corrupt document degrades to an empty baseline
// instead of propagating a parse error; losing the ability to proceed would
// be worse than starting over, and the raw file is still on disk until the
// next write.
func (s *JSONStore) read() *document {
	doc := &document{Version: constants.StoreVersion}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read storage, continuing with empty state", "error", err)
		}
		return doc
	}

	if err := json.Unmarshal(data, doc); err != nil {
		logger.Warn("storage document is corrupt, continuing with empty state", "error", err)
		return &document{Version: constants.StoreVersion}
	}

	return doc
}

func (s *JSONStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadQuestions() ([]models.Question, int64, error) {
	doc := s.read()

	norm := make([]models.Question, len(doc.Questions))
	for i, q := range doc.Questions {
		norm[i] = models.NormaliseQuestion(q)
	}

	// Write the canonical collection back so every later reader sees it.
	// Canonicalization is not a logical change, so the revision stays put.
	doc.Questions = norm
	if err := s.write(doc); err != nil {
		return nil, 0, err
	}

	return norm, doc.QuestionsRev, nil
}

func (s *JSONStore) SaveQuestions(questions []models.Question, rev int64) error {
	doc := s.read()
	if doc.QuestionsRev != rev {
		return fmt.Errorf("questions rev %d != %d: %w", doc.QuestionsRev, rev, ErrStaleWrite)
	}
	doc.Questions = questions
	doc.QuestionsRev++
	return s.write(doc)
}

func (s *JSONStore) LoadEntries() ([]models.Entry, int64, error) {
	doc := s.read()

	norm := make([]models.Entry, len(doc.Entries))
	for i, e := range doc.Entries {
		norm[i] = models.NormaliseEntry(e)
	}

	doc.Entries = norm
	if err := s.write(doc); err != nil {
		return nil, 0, err
	}

	return norm, doc.EntriesRev, nil
}

func (s *JSONStore) SaveEntries(entries []models.Entry, rev int64) error {
	doc := s.read()
	if doc.EntriesRev != rev {
		return fmt.Errorf("entries rev %d != %d: %w", doc.EntriesRev, rev, ErrStaleWrite)
	}
	doc.Entries = entries
	doc.EntriesRev++
	return s.write(doc)
}

func (s *JSONStore) PINHash() (string, error) {
	doc := s.read()
	if doc.PinHash == "" {
		return "", ErrNotFound
	}
	return doc.PinHash, nil
}

func (s *JSONStore) SetPINHash(hash string) error {
	doc := s.read()
	doc.PinHash = hash
	return s.write(doc)
}

func (s *JSONStore) DeletePINHash() error {
	doc := s.read()
	doc.PinHash = ""
	return s.write(doc)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
