package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/models"
)

// SQLiteStore keeps each collection as ordered JSON documents. The model is
// schemaless by design (questions define the schema, and it evolves), so rows
// hold the canonical document rather than one column per field.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	doc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	doc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS app_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	metaQuestionsRev = "questions_rev"
	metaEntriesRev   = "entries_rev"
	metaPinHash      = "pin_hash"
)

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'trackdown init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on every open also upgrades
	// databases created by older builds that lacked a table.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) revision(q queryer, key string) (int64, error) {
	var value string
	err := q.QueryRow("SELECT value FROM app_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	rev, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, nil
	}
	return rev, nil
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(
		"INSERT INTO app_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

func (s *SQLiteStore) LoadQuestions() ([]models.Question, int64, error) {
	docs, err := s.readDocs("questions")
	if err != nil {
		return nil, 0, err
	}

	norm := make([]models.Question, 0, len(docs))
	for _, doc := range docs {
		var q models.Question
		if err := json.Unmarshal([]byte(doc), &q); err != nil {
			logger.Warn("skipping corrupt question document", "error", err)
			continue
		}
		norm = append(norm, models.NormaliseQuestion(q))
	}

	rev, err := s.revision(s.db, metaQuestionsRev)
	if err != nil {
		return nil, 0, err
	}

	if err := s.writeCollection("questions", questionIDs(norm), marshalAll(norm)); err != nil {
		return nil, 0, err
	}

	return norm, rev, nil
}

func (s *SQLiteStore) SaveQuestions(questions []models.Question, rev int64) error {
	return s.saveCollection("questions", metaQuestionsRev, questionIDs(questions), marshalAll(questions), rev)
}

func (s *SQLiteStore) LoadEntries() ([]models.Entry, int64, error) {
	docs, err := s.readDocs("entries")
	if err != nil {
		return nil, 0, err
	}

	norm := make([]models.Entry, 0, len(docs))
	for _, doc := range docs {
		var e models.Entry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			logger.Warn("skipping corrupt entry document", "error", err)
			continue
		}
		norm = append(norm, models.NormaliseEntry(e))
	}

	rev, err := s.revision(s.db, metaEntriesRev)
	if err != nil {
		return nil, 0, err
	}

	if err := s.writeCollection("entries", entryIDs(norm), marshalAll(norm)); err != nil {
		return nil, 0, err
	}

	return norm, rev, nil
}

func (s *SQLiteStore) SaveEntries(entries []models.Entry, rev int64) error {
	return s.saveCollection("entries", metaEntriesRev, entryIDs(entries), marshalAll(entries), rev)
}

func (s *SQLiteStore) readDocs(table string) ([]string, error) {
	rows, err := s.db.Query("SELECT doc FROM " + table + " ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// writeCollection replaces a table's rows with the canonical documents,
// leaving the revision untouched (canonicalization is not a logical change).
func (s *SQLiteStore) writeCollection(table string, ids, docs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceRows(tx, table, ids, docs); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) saveCollection(table, revKey string, ids, docs []string, rev int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	current, err := s.revision(tx, revKey)
	if err != nil {
		return err
	}
	if current != rev {
		return fmt.Errorf("%s rev %d != %d: %w", table, current, rev, ErrStaleWrite)
	}

	if err := replaceRows(tx, table, ids, docs); err != nil {
		return err
	}
	if err := setMeta(tx, revKey, strconv.FormatInt(rev+1, 10)); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceRows(tx *sql.Tx, table string, ids, docs []string) error {
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return err
	}
	for i := range docs {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO "+table+" (id, position, doc) VALUES (?, ?, ?)",
			ids[i], i, docs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) PINHash() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_meta WHERE key = ?", metaPinHash).Scan(&value)
	if err == sql.ErrNoRows || (err == nil && value == "") {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) SetPINHash(hash string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := setMeta(tx, metaPinHash, hash); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeletePINHash() error {
	_, err := s.db.Exec("DELETE FROM app_meta WHERE key = ?", metaPinHash)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func questionIDs(qs []models.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

func entryIDs(es []models.Entry) []string {
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.ID
	}
	return ids
}

func marshalAll[T any](items []T) []string {
	docs := make([]string, len(items))
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			// Model types marshal without error; keep the slot so ids and
			// docs stay aligned.
			data = []byte("{}")
		}
		docs[i] = string(data)
	}
	return docs
}
