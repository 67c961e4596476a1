package store

import "github.com/propscope/feasibility/pkg/feasibility"

// MemoryStore keeps the collection in process memory. It backs tests and the
// "memory" storage backend; contents are lost on exit.
type MemoryStore struct {
	studies []feasibility.Study

	// LoadErr and StoreErr, when set, are returned by the respective
	// operations. Used by tests to simulate backend failures.
	LoadErr  error
	StoreErr error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadAll returns a copy of the stored collection.
func (m *MemoryStore) LoadAll() ([]feasibility.Study, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]feasibility.Study, len(m.studies))
	copy(out, m.studies)
	return out, nil
}

// StoreAll replaces the stored collection.
func (m *MemoryStore) StoreAll(studies []feasibility.Study) error {
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.studies = make([]feasibility.Study, len(studies))
	copy(m.studies, studies)
	return nil
}
