package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/julianstephens/trackdown/internal/utils"
)

// ResponseMeta records which question version was active when a value was
// captured. This is what keeps historical answers interpretable after a
// question's type, options, or scale change.
type ResponseMeta struct {
	VersionAtTime int `json:"versionAtTime"`
}

// Entry is one calendar date's recorded observation set. At most one entry per
// date is the UI convention (overwrite with confirmation); storage itself does
// not enforce it.
type Entry struct {
	ID        string                  `json:"id"`
	Date      string                  `json:"date"` // YYYY-MM-DD
	Responses map[string]Value        `json:"responses"`
	Meta      map[string]ResponseMeta `json:"meta"`
	Comment   string                  `json:"comment"`
	CreatedAt string                  `json:"createdAt"` // RFC3339
	UpdatedAt string                  `json:"updatedAt"` // RFC3339
}

// NormaliseEntry produces the canonical form of an entry. Idempotent: an
// existing createdAt/updatedAt is never overwritten, and present maps are
// kept as they are.
func NormaliseEntry(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date == "" {
		e.Date = utils.Today()
	}
	if e.Responses == nil {
		e.Responses = map[string]Value{}
	}
	if e.Meta == nil {
		e.Meta = map[string]ResponseMeta{}
	}
	if e.CreatedAt == "" {
		e.CreatedAt = utils.NowStamp()
	}
	if e.UpdatedAt == "" {
		e.UpdatedAt = utils.NowStamp()
	}
	return e
}

// UnmarshalJSON tolerates non-object responses/meta and loose field types in
// older documents; normalisation supplies the defaults afterwards.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Date      json.RawMessage `json:"date"`
		Responses json.RawMessage `json:"responses"`
		Meta      json.RawMessage `json:"meta"`
		Comment   json.RawMessage `json:"comment"`
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.ID = rawText(raw.ID)
	e.Date = rawText(raw.Date)
	e.Comment = rawText(raw.Comment)
	e.CreatedAt = rawText(raw.CreatedAt)
	e.UpdatedAt = rawText(raw.UpdatedAt)

	e.Responses = nil
	if len(raw.Responses) > 0 {
		var responses map[string]Value
		if err := json.Unmarshal(raw.Responses, &responses); err == nil {
			e.Responses = responses
		}
	}

	e.Meta = nil
	if len(raw.Meta) > 0 {
		var meta map[string]rawMeta
		if err := json.Unmarshal(raw.Meta, &meta); err == nil {
			e.Meta = make(map[string]ResponseMeta, len(meta))
			for qid, m := range meta {
				e.Meta[qid] = ResponseMeta{VersionAtTime: m.versionAtTime()}
			}
		}
	}

	return nil
}

type rawMeta struct {
	VersionAtTime json.RawMessage `json:"versionAtTime"`
}

func (m rawMeta) versionAtTime() int {
	v := rawInt(m.VersionAtTime)
	if v < 1 {
		return 1
	}
	return v
}
