package roster

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when no record matches the given key.
var ErrNotFound = errors.New("student not found")

// Store is the in-memory canonical list of student records. Records are
// created once from seed data, replaced whole on save, and never deleted.
// Insertion order is preserved for listing.
type Store struct {
	mu       sync.RWMutex
	students []Student
}

// NewStore creates a store pre-populated with the given records.
func NewStore(seed []Student) *Store {
	students := make([]Student, len(seed))
	for i, s := range seed {
		students[i] = s.Clone()
	}
	return &Store{students: students}
}

// All returns every record in store order.
func (st *Store) All() []Student {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Student, len(st.students))
	for i, s := range st.students {
		out[i] = s.Clone()
	}
	return out
}

// Filter returns records whose name or regNo contains the search term
// (case-insensitive) and whose department matches dept, in store order.
// The DeptAll sentinel matches every department; an empty search term
// matches every record.
func (st *Store) Filter(search, dept string) []Student {
	st.mu.RLock()
	defer st.mu.RUnlock()

	term := strings.ToLower(search)
	var out []Student
	for _, s := range st.students {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.RegNo), term) {
			continue
		}
		if dept != "" && dept != DeptAll && s.Department != dept {
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}

// Get returns the record with the given id.
func (st *Store) Get(id string) (Student, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.students {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return Student{}, ErrNotFound
}

// GetByRegNo looks up a record by registration number, case-insensitively.
func (st *Store) GetByRegNo(regNo string) (Student, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.students {
		if strings.EqualFold(s.RegNo, regNo) {
			return s.Clone(), nil
		}
	}
	return Student{}, ErrNotFound
}

// Save replaces the stored record matching upd.ID with upd. Position in the
// list is kept so listings stay stable across edits.
func (st *Store) Save(upd Student) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, s := range st.students {
		if s.ID == upd.ID {
			st.students[i] = upd.Clone()
			return nil
		}
	}
	return ErrNotFound
}

// Len returns the number of records.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.students)
}
