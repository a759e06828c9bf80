package pipeline

import (
	"fmt"
	"reflect"
	"sync"

	"classpatch/internal/classfile"
	"classpatch/internal/transform"
)

// Transformer is the per-class contract the pipeline drives.
type Transformer interface {
	Targets() []transform.Target
	CastVote(transform.Context) transform.Vote
	Transform(*classfile.ClassNode, transform.Context) *classfile.ClassNode
}

// Applier is implemented by transformers that expose a structured result.
// The pipeline uses it to detect failures and roll them back.
type Applier interface {
	Apply(*classfile.ClassNode) transform.Result
	Report(transform.Result) *classfile.ClassNode
}

// Registry is the ordered registration table of transformers.
type Registry struct {
	mu       sync.RWMutex
	all      []Transformer
	byTarget map[transform.Target][]Transformer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTarget: make(map[transform.Target][]Transformer)}
}

// Register appends transformers in order. Nil entries, including typed nil
// pointers, are dropped.
func (r *Registry) Register(ts ...Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range ts {
		if isNil(t) {
			continue
		}

		r.all = append(r.all, t)

		for _, target := range t.Targets() {
			r.byTarget[target] = append(r.byTarget[target], t)
		}
	}
}

// For returns the transformers targeting the class, in registration order.
func (r *Registry) For(target transform.Target) []Transformer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Transformer(nil), r.byTarget[target]...)
}

// All returns every registered transformer in registration order.
func (r *Registry) All() []Transformer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Transformer(nil), r.all...)
}

// Len returns the number of registered transformers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.all)
}

// Targets returns the number of distinct target classes.
func (r *Registry) Targets() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byTarget)
}

func transformerName(t Transformer) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", t)
}

func isNil(t Transformer) bool {
	if t == nil {
		return true
	}

	v := reflect.ValueOf(t)

	return v.Kind() == reflect.Pointer && v.IsNil()
}
