package transcript

import (
	"github.com/google/uuid"

	"github.com/kirillkom/docchat/internal/core/domain"
)

// Store owns the ordered transcript records.
type Store struct {
	records []domain.MessageRecord
	newID   func() string
}

func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// Append assigns a fresh identifier to the record and adds it at the end.
func (s *Store) Append(rec domain.MessageRecord) domain.MessageRecord {
	rec.ID = s.newID()
	if rec.Kind == domain.KindPending {
		rec.Text = ""
	}
	s.records = append(s.records, rec)
	return rec
}

// Remove deletes the record with the given id. It reports whether a record
// was removed; unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Records() []domain.MessageRecord {
	out := make([]domain.MessageRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	return len(s.records)
}
