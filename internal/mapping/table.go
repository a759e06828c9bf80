package mapping

import (
	"fmt"
	"strings"
)

type memberKey struct {
	owner string
	name  string
	desc  string
}

// Table maps symbolic identifiers to the identifiers of the running
// artifact. A nil or empty Table maps every name to itself.
type Table struct {
	classes map[string]string
	fields  map[memberKey]string
	methods map[memberKey]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		classes: make(map[string]string),
		fields:  make(map[memberKey]string),
		methods: make(map[memberKey]string),
	}
}

// Identity returns the table used when the artifact runs with original names.
func Identity() *Table {
	return NewTable()
}

// AddClass records the runtime name of a class.
func (t *Table) AddClass(name, runtime string) {
	t.classes[name] = runtime
}

// AddField records the runtime name of a field. Fields are keyed by owner
// and name only.
func (t *Table) AddField(owner, name, runtime string) {
	t.fields[memberKey{owner: owner, name: name}] = runtime
}

// AddMethod records the runtime name of a method overload.
func (t *Table) AddMethod(owner, name, desc, runtime string) {
	t.methods[memberKey{owner: owner, name: name, desc: desc}] = runtime
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.classes) + len(t.fields) + len(t.methods)
}

// ClassName returns the runtime name of a class.
func (t *Table) ClassName(name string) string {
	if t != nil {
		if runtime, ok := t.classes[name]; ok && runtime != "" {
			return runtime
		}
	}

	return name
}

// RemapDesc rewrites the class names in a descriptor to runtime names.
func (t *Table) RemapDesc(desc string) string {
	return RemapDesc(desc, t.ClassName)
}

// Class builds the descriptor of a class.
func (t *Table) Class(name string) (Class, error) {
	if strings.TrimSpace(name) == "" {
		return Class{}, fmt.Errorf("%w: empty class name", ErrBadMapping)
	}

	return Class{name: name, runtime: t.ClassName(name)}, nil
}

// Field builds the descriptor of a field.
func (t *Table) Field(fm FieldMapping) (Field, error) {
	owner, err := t.Class(fm.Owner)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", fm.Name, err)
	}

	if fm.Name == "" {
		return Field{}, fmt.Errorf("%w: field of %s has no name", ErrBadMapping, fm.Owner)
	}

	if fm.Type != "" && !ValidFieldDesc(fm.Type) {
		return Field{}, fmt.Errorf("%w: field %s.%s has bad type %q", ErrBadMapping, fm.Owner, fm.Name, fm.Type)
	}

	runtime := fm.Name
	if t != nil {
		if r, ok := t.fields[memberKey{owner: fm.Owner, name: fm.Name}]; ok && r != "" {
			runtime = r
		}
	}

	return Field{
		owner:       owner,
		name:        fm.Name,
		runtime:     runtime,
		desc:        fm.Type,
		runtimeDesc: t.RemapDesc(fm.Type),
	}, nil
}

// Method builds the descriptor of a method.
func (t *Table) Method(mm MethodMapping) (Method, error) {
	owner, err := t.Class(mm.Owner)
	if err != nil {
		return Method{}, fmt.Errorf("method %s: %w", mm.Name, err)
	}

	if mm.Name == "" {
		return Method{}, fmt.Errorf("%w: method of %s has no name", ErrBadMapping, mm.Owner)
	}

	desc := mm.Descriptor()
	if !ValidMethodDesc(desc) {
		return Method{}, fmt.Errorf("%w: method %s.%s has bad descriptor %q", ErrBadMapping, mm.Owner, mm.Name, desc)
	}

	runtime := mm.Name
	if t != nil {
		if r, ok := t.methods[memberKey{owner: mm.Owner, name: mm.Name, desc: desc}]; ok && r != "" {
			runtime = r
		}
	}

	return Method{
		owner:       owner,
		name:        mm.Name,
		runtime:     runtime,
		desc:        desc,
		runtimeDesc: t.RemapDesc(desc),
	}, nil
}
