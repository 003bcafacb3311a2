package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/trackdown/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "trackdown.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	questions, rev, err := store.LoadQuestions()
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(questions) != 0 || rev != 0 {
		t.Fatalf("fresh store: %d questions, rev %d", len(questions), rev)
	}

	qa := models.NormaliseQuestion(models.Question{Text: "Mood", Type: models.TypeNumber, Preset: "mood_1_5"})
	qb := models.NormaliseQuestion(models.Question{Text: "Symptoms", Type: models.TypeSelect, Options: []string{"a", "b"}})
	if err := store.SaveQuestions([]models.Question{qa, qb}, rev); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	questions, rev, err = store.LoadQuestions()
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if rev != 1 {
		t.Errorf("rev = %d, want 1", rev)
	}
	if len(questions) != 2 || questions[0].ID != qa.ID || questions[1].ID != qb.ID {
		t.Fatalf("order not preserved: %+v", questions)
	}
	if questions[0].Scale == nil || *questions[0].Scale.Min != 1 {
		t.Errorf("preset scale lost: %+v", questions[0].Scale)
	}
}

func TestSQLiteStoreEntriesStaleWrite(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, rev, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}

	e := models.NormaliseEntry(models.Entry{
		Date:      "2024-05-01",
		Responses: map[string]models.Value{"q1": models.BoolValue(false)},
	})
	if err := store.SaveEntries([]models.Entry{e}, rev); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	err = store.SaveEntries([]models.Entry{}, rev)
	if !errors.Is(err, ErrStaleWrite) {
		t.Errorf("stale save = %v, want ErrStaleWrite", err)
	}

	entries, rev, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 || rev != 1 {
		t.Fatalf("reload: %d entries, rev %d", len(entries), rev)
	}
	got := entries[0].Responses["q1"]
	if got.Kind() != models.KindBool || got.Bool() {
		t.Errorf("boolean false response lost: %v", got)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trackdown.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	_, rev, _ := store.LoadQuestions()
	q := models.NormaliseQuestion(models.Question{Text: "x"})
	if err := store.SaveQuestions([]models.Question{q}, rev); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer reopened.Close()

	questions, rev, err := reopened.LoadQuestions()
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != q.ID || rev != 1 {
		t.Errorf("reopen lost data: %d questions, rev %d", len(questions), rev)
	}
}

func TestSQLiteStorePINHash(t *testing.T) {
	store := newTestSQLiteStore(t)

	if _, err := store.PINHash(); !errors.Is(err, ErrNotFound) {
		t.Errorf("PINHash on fresh store = %v, want ErrNotFound", err)
	}
	if err := store.SetPINHash("deadbeef"); err != nil {
		t.Fatalf("SetPINHash: %v", err)
	}
	hash, err := store.PINHash()
	if err != nil || hash != "deadbeef" {
		t.Errorf("PINHash = %q, %v", hash, err)
	}
	if err := store.DeletePINHash(); err != nil {
		t.Fatalf("DeletePINHash: %v", err)
	}
	if _, err := store.PINHash(); !errors.Is(err, ErrNotFound) {
		t.Errorf("PINHash after delete = %v, want ErrNotFound", err)
	}
}
