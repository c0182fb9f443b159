package rules

import (
	"sort"
	"sync"
)

// Registry maps custom rule descriptors to predicates.
type Registry struct {
	mu    sync.RWMutex
	preds map[string]Predicate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{preds: map[string]Predicate{}}
}

// Register adds or replaces the predicate for descriptor. Empty descriptors
// and nil predicates are ignored.
func (r *Registry) Register(descriptor string, p Predicate) {
	if descriptor == "" || p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds[descriptor] = p
}

// Lookup returns the predicate registered for descriptor.
func (r *Registry) Lookup(descriptor string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.preds[descriptor]
	return p, ok
}

// Descriptors lists registered descriptors in sorted order.
func (r *Registry) Descriptors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.preds))
	for d := range r.preds {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the package-level registry used by Rule.Step.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterCustom adds a predicate to the default registry.
func RegisterCustom(descriptor string, p Predicate) {
	defaultRegistry.Register(descriptor, p)
}

// BriansBrain3 is the descriptor of the built-in three-state Brian's Brain.
const BriansBrain3 = "briansbrain3"

func init() {
	RegisterCustom(BriansBrain3, briansBrain3)
}
