/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Column registry shared by the tabular and JSON normalizers and the
aggregator. Assigns stable, append-only integer indices to column names in
first-seen order.
*/

package registry

import "sync"

// Registry maps column names to stable indices.
// Indices are never reused or reassigned and names are unique.
type Registry struct {
	mu    sync.RWMutex
	index map[string]int
	names []string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// GetOrCreate returns the index for name, registering it when absent.
// created reports whether this call assigned a new index.
func (r *Registry) GetOrCreate(name string) (idx int, created bool) {
	r.mu.RLock()
	idx, ok := r.index[name]
	r.mu.RUnlock()
	if ok {
		return idx, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have registered it between the locks
	if idx, ok := r.index[name]; ok {
		return idx, false
	}

	idx = len(r.names)
	r.index[name] = idx
	r.names = append(r.names, name)
	return idx, true
}

// Lookup returns the index for name without registering it
func (r *Registry) Lookup(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[name]
	return idx, ok
}

// Name returns the column name bound to idx, or "" if idx is out of range
func (r *Registry) Name(idx int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx < 0 || idx >= len(r.names) {
		return ""
	}
	return r.names[idx]
}

// Names returns a copy of all names in index order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered columns
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
