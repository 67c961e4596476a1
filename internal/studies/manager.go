// Package studies implements the study record lifecycle: identity assignment,
// create-versus-update semantics, and list/get/delete against a pluggable
// persistence store.
package studies

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propscope/feasibility/internal/store"
	"github.com/propscope/feasibility/pkg/feasibility"
	"go.uber.org/zap"
)

// ErrStudyNotFound is returned by GetByID and Update for an unknown id.
var ErrStudyNotFound = errors.New("study not found")

// Manager owns the in-memory representation of the study collection. Every
// mutation is a whole-collection read-modify-write against the store; mu
// serializes those cycles so concurrent HTTP requests cannot interleave a
// load with another request's store and drop its update.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a Manager backed by the given store.
func NewManager(s store.Store, logger *zap.Logger) *Manager {
	return NewManagerWithClock(s, logger, time.Now)
}

// NewManagerWithClock creates a Manager with an injected clock for
// deterministic timestamps in tests.
func NewManagerWithClock(s store.Store, logger *zap.Logger, now func() time.Time) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: s, logger: logger, now: now}
}

// Create runs the metrics engine over the input, assigns a fresh identity and
// timestamps, and persists the resulting study.
func (m *Manager) Create(in feasibility.Input) (feasibility.Study, error) {
	now := m.now().UTC()
	study := feasibility.Compute(in, uuid.NewString(), now, now)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(study); err != nil {
		return feasibility.Study{}, err
	}
	m.logger.Info("created study",
		zap.String("op", "studies.Manager.Create"),
		zap.String("id", study.ID),
		zap.String("projectName", study.ProjectName),
	)
	return study, nil
}

// Update recomputes the study identified by id from the new input. The whole
// record is replaced; id and createdAt are preserved, updatedAt is stamped.
func (m *Manager) Update(id string, in feasibility.Input) (feasibility.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, err := m.getByID(id)
	if err != nil {
		return feasibility.Study{}, err
	}
	study := feasibility.Compute(in, existing.ID, existing.CreatedAt, m.now().UTC())
	if err := m.save(study); err != nil {
		return feasibility.Study{}, err
	}
	m.logger.Info("updated study",
		zap.String("op", "studies.Manager.Update"),
		zap.String("id", study.ID),
	)
	return study, nil
}

// Save upserts a study by id: a known id is replaced in place, preserving its
// position in the collection; an unseen id is appended.
func (m *Manager) Save(study feasibility.Study) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(study)
}

func (m *Manager) save(study feasibility.Study) error {
	all, err := m.store.LoadAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range all {
		if all[i].ID == study.ID {
			all[i] = study
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, study)
	}

	return m.store.StoreAll(all)
}

// List returns all persisted studies in storage (insertion) order. An empty
// or unreadable backing collection yields an empty slice.
func (m *Manager) List() ([]feasibility.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.LoadAll()
}

// GetByID returns the study with the given id, or ErrStudyNotFound.
func (m *Manager) GetByID(id string) (feasibility.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getByID(id)
}

func (m *Manager) getByID(id string) (feasibility.Study, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return feasibility.Study{}, err
	}
	for i := range all {
		if all[i].ID == id {
			return all[i], nil
		}
	}
	return feasibility.Study{}, ErrStudyNotFound
}

// DeleteByID removes the study with the given id. Deleting an unknown id is a
// silent no-op.
func (m *Manager) DeleteByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all, err := m.store.LoadAll()
	if err != nil {
		return err
	}

	filtered := all[:0]
	for i := range all {
		if all[i].ID != id {
			filtered = append(filtered, all[i])
		}
	}
	if len(filtered) == len(all) {
		return nil
	}

	if err := m.store.StoreAll(filtered); err != nil {
		return err
	}
	m.logger.Info("deleted study",
		zap.String("op", "studies.Manager.DeleteByID"),
		zap.String("id", id),
	)
	return nil
}
