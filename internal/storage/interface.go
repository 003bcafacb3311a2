package storage

import (
	"errors"

	"github.com/julianstephens/trackdown/internal/models"
)

// ErrStaleWrite is returned by SaveQuestions/SaveEntries when the revision the
// caller observed at load no longer matches the stored one, meaning another
// writer committed in between. Callers reload, re-apply, and retry.
var ErrStaleWrite = errors.New("collection changed since load, reload and retry")

// ErrNotFound is returned when a requested record or secret does not exist.
var ErrNotFound = errors.New("not found")

// Provider is the persistence boundary. Loads normalise every element and
// write the canonical collection back, so legacy-shaped records are upgraded
// in place on first touch and every later reader sees canonical data. Saves
// persist the collection verbatim; normalising first is the caller's job.
//
// Each collection carries a monotonically increasing revision. Load returns
// the current revision; Save takes the revision the caller loaded and rejects
// stale writes with ErrStaleWrite.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Questions
	LoadQuestions() ([]models.Question, int64, error)
	SaveQuestions(questions []models.Question, rev int64) error

	// Entries
	LoadEntries() ([]models.Entry, int64, error)
	SaveEntries(entries []models.Entry, rev int64) error

	// PIN secret
	PINHash() (string, error)
	SetPINHash(hash string) error
	DeletePINHash() error

	// Utils
	GetConfigPath() string
}
