package mapping

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrUnmappedParameter is returned when a mapping-capable parameter or
	// target lacks the metadata needed to resolve it.
	ErrUnmappedParameter = errors.New("unmapped parameter")
	// ErrBadMapping is returned when metadata is present but malformed.
	ErrBadMapping = errors.New("bad mapping")
)

// Resolver turns declarative metadata into descriptors through a Table.
// Resolution is pure, so results are cached by kind and reference.
type Resolver struct {
	table *Table
	cache *lru.Cache[string, Descriptor]
}

// NewResolver creates a resolver over table. A nil table resolves every name
// to itself; cacheSize <= 0 disables the cache.
func NewResolver(table *Table, cacheSize int) (*Resolver, error) {
	r := &Resolver{table: table}

	if cacheSize > 0 {
		cache, err := lru.New[string, Descriptor](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create descriptor cache: %w", err)
		}

		r.cache = cache
	}

	return r, nil
}

// Table returns the table the resolver maps through.
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve resolves the metadata attribute matching kind. KindRawNode needs no
// resolution and yields (nil, nil).
func (r *Resolver) Resolve(kind Kind, md Metadata) (Descriptor, error) {
	if kind == KindRawNode {
		return nil, nil
	}

	if !kind.IsMapping() {
		return nil, fmt.Errorf("%w: kind %s cannot be resolved", ErrBadMapping, kind)
	}

	if !md.Has(kind) {
		return nil, fmt.Errorf("%w: %s parameter must have %s mapping metadata", ErrUnmappedParameter, kind, kind)
	}

	key := kind.String() + "|" + md.ref(kind)
	if r.cache != nil {
		if d, ok := r.cache.Get(key); ok {
			return d, nil
		}
	}

	d, err := r.build(kind, md)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Add(key, d)
	}

	return d, nil
}

func (r *Resolver) build(kind Kind, md Metadata) (Descriptor, error) {
	switch kind {
	case KindClass:
		return r.table.Class(md.Class.Name)
	case KindField:
		return r.table.Field(*md.Field)
	default:
		return r.table.Method(*md.Method)
	}
}

// ResolveMethod resolves an injection target. A nil mapping fails with
// ErrUnmappedParameter.
func (r *Resolver) ResolveMethod(mm *MethodMapping) (Method, error) {
	d, err := r.Resolve(KindMethod, Metadata{Method: mm})
	if err != nil {
		return Method{}, err
	}

	return d.(Method), nil
}
