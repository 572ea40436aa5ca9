package registry

import (
	"maps"
	"slices"
)

// KeySet is a read-only view of collected parent keys.
type KeySet interface {
	// Has returns true if the key was collected from parent records.
	Has(key string) bool
	// Len returns the number of distinct keys.
	Len() int
}

// KeyIndex collects primary keys of parent records during one extraction
// run. Keys are compared as text, so leading zeros are significant.
//
// A KeyIndex has a single owner. The parent phase fills it and then hands
// it over to the dependent phase as a KeySet. It is not safe for
// concurrent use while keys are being added.
type KeyIndex struct {
	keys map[string]struct{}
}

// NewKeyIndex creates an empty index.
func NewKeyIndex() *KeyIndex {
	return &KeyIndex{keys: make(map[string]struct{})}
}

// Add inserts a key. Keys are never removed.
func (ki *KeyIndex) Add(key string) {
	ki.keys[key] = struct{}{}
}

// Has implements KeySet.
func (ki *KeyIndex) Has(key string) bool {
	_, ok := ki.keys[key]
	return ok
}

// Len implements KeySet.
func (ki *KeyIndex) Len() int {
	return len(ki.keys)
}

// Keys returns all keys sorted.
func (ki *KeyIndex) Keys() []string {
	return slices.Sorted(maps.Keys(ki.keys))
}
