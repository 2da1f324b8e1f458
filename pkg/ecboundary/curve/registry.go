package curve

import (
	"errors"
	"fmt"
)

// ErrDuplicateEntry is returned when a registry would map two entries to the
// same tag or the same invariants.
var ErrDuplicateEntry = errors.New("duplicate curve registry entry")

// Entry binds a tag to the invariants of its group.
type Entry struct {
	Tag        Tag
	Invariants Invariants
}

// Registry is an ordered, immutable tag table. Entries are matched in the
// order they were supplied.
type Registry struct {
	entries []Entry
}

var defaultRegistry = mustRegistry(defaultEntries())

func mustRegistry(entries []Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRegistry builds a registry from entries. Every entry needs a valid tag
// and fully populated invariants; tags and invariant sets must be unique so
// resolution is injective.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if !e.Tag.Valid() {
			return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCurve, uint8(e.Tag))
		}
		inv := e.Invariants
		if inv.BaseCharacteristic == nil || inv.ScalarCharacteristic == nil || inv.Cofactor == nil {
			return nil, fmt.Errorf("curve: entry %s has incomplete invariants", e.Tag)
		}
		for _, prev := range r.entries {
			if prev.Tag == e.Tag {
				return nil, fmt.Errorf("%w: tag %s registered twice", ErrDuplicateEntry, e.Tag)
			}
			if prev.Invariants.Equal(inv) {
				return nil, fmt.Errorf("%w: %s and %s share invariants", ErrDuplicateEntry, prev.Tag, e.Tag)
			}
		}
		r.entries = append(r.entries, Entry{Tag: e.Tag, Invariants: inv.Clone()})
	}
	return r, nil
}

// Default returns the registry of all supported groups.
func Default() *Registry {
	return defaultRegistry
}

// Resolve returns the tag of the first entry whose invariants equal inv.
func (r *Registry) Resolve(inv Invariants) (Tag, error) {
	for _, e := range r.entries {
		if e.Invariants.Equal(inv) {
			return e.Tag, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s group matches", ErrUnsupportedCurve, inv.Model)
}

// Lookup returns a copy of the invariants registered for t.
func (r *Registry) Lookup(t Tag) (Invariants, bool) {
	for _, e := range r.entries {
		if e.Tag == t {
			return e.Invariants.Clone(), true
		}
	}
	return Invariants{}, false
}

// Resolve resolves inv against the default registry.
func Resolve(inv Invariants) (Tag, error) {
	return defaultRegistry.Resolve(inv)
}

// Lookup returns the default registry's invariants for t.
func Lookup(t Tag) (Invariants, bool) {
	return defaultRegistry.Lookup(t)
}

// Verify checks that inv resolves to the declared tag. Registration paths use
// it to reject backends whose declared tag disagrees with their structure.
func Verify(declared Tag, inv Invariants) error {
	got, err := Resolve(inv)
	if err != nil {
		return err
	}
	if got != declared {
		return fmt.Errorf("%w: declared %s but invariants resolve to %s", ErrUnsupportedCurve, declared, got)
	}
	return nil
}
