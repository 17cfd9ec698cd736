// Package registry binds check identifiers to their checks and static
// metadata. A Registry is immutable once built.
package registry

import (
	"errors"
	"fmt"

	"github.com/vertti/repocheck/pkg/check"
)

var (
	ErrUnknownCheck    = errors.New("unknown check")
	ErrDuplicateCheck  = errors.New("duplicate check")
	ErrInvalidMetadata = errors.New("invalid check metadata")
)

// Entry pairs a check with its metadata.
type Entry struct {
	Metadata check.Metadata
	Check    check.Checker
}

// Registry is an ordered, read-only set of entries.
type Registry struct {
	entries []Entry
	byID    map[check.ID]int
}

// New validates entries and builds a Registry. Identifiers and
// external names must be unique.
func New(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[check.ID]int, len(entries)),
	}
	external := make(map[string]check.ID)

	for _, e := range entries {
		if err := e.Metadata.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
		if e.Check == nil {
			return nil, fmt.Errorf("%w: check %s has no implementation", ErrInvalidMetadata, e.Metadata.ID)
		}
		if _, ok := r.byID[e.Metadata.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCheck, e.Metadata.ID)
		}
		if name := e.Metadata.ExternalName; name != "" {
			if other, ok := external[name]; ok {
				return nil, fmt.Errorf("%w: external name %q used by %s and %s", ErrDuplicateCheck, name, other, e.Metadata.ID)
			}
			external[name] = e.Metadata.ID
		}

		e.Metadata.Categories = append([]check.Category(nil), e.Metadata.Categories...)
		r.byID[e.Metadata.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(entries ...Entry) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the entry registered under id.
func (r *Registry) Get(id check.ID) (Entry, error) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownCheck, id)
	}
	return r.entries[i], nil
}

// Metadata returns the metadata registered under id.
func (r *Registry) Metadata(id check.ID) (check.Metadata, error) {
	e, err := r.Get(id)
	return e.Metadata, err
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// IDs returns all identifiers in registration order.
func (r *Registry) IDs() []check.ID {
	ids := make([]check.ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.Metadata.ID
	}
	return ids
}

// ExternalNames returns the scorecard names referenced by the
// registered checks, in registration order.
func (r *Registry) ExternalNames() []string {
	var names []string
	for _, e := range r.entries {
		if e.Metadata.ExternalName != "" {
			names = append(names, e.Metadata.ExternalName)
		}
	}
	return names
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.entries)
}
