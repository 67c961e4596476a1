// Package store provides whole-collection persistence for feasibility
// studies. A Store owns no study semantics: it serializes and deserializes the
// full collection atomically under a single namespace, and the lifecycle
// manager is the sole owner of the in-memory representation.
package store

import "github.com/propscope/feasibility/pkg/feasibility"

// Store is the persistence contract. LoadAll returns an empty slice when the
// backing data is absent or unparsable; corrupt state never blocks the user.
// StoreAll failures are surfaced to the caller.
type Store interface {
	LoadAll() ([]feasibility.Study, error)
	StoreAll(studies []feasibility.Study) error
}
