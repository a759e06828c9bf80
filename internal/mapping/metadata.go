package mapping

import (
	"fmt"
	"strings"
)

// ClassMapping declares a class by its symbolic internal name.
type ClassMapping struct {
	Name string
}

// FieldMapping declares a field. Type is an optional field descriptor.
type FieldMapping struct {
	Owner string
	Name  string
	Type  string
}

// MethodMapping declares a method. When Desc is empty the descriptor is
// assembled from Args and Return; Return defaults to "V".
type MethodMapping struct {
	Owner  string
	Name   string
	Desc   string
	Args   []string
	Return string
}

// Descriptor returns the method descriptor the mapping declares.
func (m MethodMapping) Descriptor() string {
	if m.Desc != "" {
		return m.Desc
	}

	ret := m.Return
	if ret == "" {
		ret = "V"
	}

	return "(" + strings.Join(m.Args, "") + ")" + ret
}

// String renders the mapping as owner.name(desc).
func (m MethodMapping) String() string {
	return m.Owner + "." + m.Name + m.Descriptor()
}

// Metadata is the declarative metadata attached to one injection parameter
// or target. At most one of the fields is expected to be set; resolution
// reads the one matching the declared kind.
type Metadata struct {
	Class  *ClassMapping
	Field  *FieldMapping
	Method *MethodMapping
}

// IsZero reports whether no mapping is present.
func (m Metadata) IsZero() bool {
	return m.Class == nil && m.Field == nil && m.Method == nil
}

// Has reports whether the mapping attribute for kind is present.
func (m Metadata) Has(kind Kind) bool {
	switch kind {
	case KindClass:
		return m.Class != nil
	case KindField:
		return m.Field != nil
	case KindMethod:
		return m.Method != nil
	default:
		return false
	}
}

// ref returns the canonical reference string for the attribute matching kind.
func (m Metadata) ref(kind Kind) string {
	switch kind {
	case KindClass:
		return m.Class.Name
	case KindField:
		if m.Field.Type == "" {
			return m.Field.Owner + "." + m.Field.Name
		}

		return m.Field.Owner + "." + m.Field.Name + ":" + m.Field.Type
	case KindMethod:
		return m.Method.String()
	default:
		return ""
	}
}

// ClassRef returns metadata declaring a class.
func ClassRef(name string) Metadata {
	return Metadata{Class: &ClassMapping{Name: name}}
}

// FieldRef returns metadata declaring a field; typ may be empty.
func FieldRef(owner, name, typ string) Metadata {
	return Metadata{Field: &FieldMapping{Owner: owner, Name: name, Type: typ}}
}

// MethodRef returns metadata declaring a method.
func MethodRef(owner, name, desc string) Metadata {
	return Metadata{Method: &MethodMapping{Owner: owner, Name: name, Desc: desc}}
}

// ParseRef parses a reference string into metadata:
//   - "a/b/C" declares a class
//   - "a/b/C.name" or "a/b/C.name:D" declares a field
//   - "a/b/C.name(I)V" declares a method
func ParseRef(s string) (Metadata, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Metadata{}, fmt.Errorf("%w: empty reference", ErrBadMapping)
	}

	owner, member, ok := strings.Cut(s, ".")
	if !ok {
		return ClassRef(s), nil
	}

	if owner == "" || member == "" {
		return Metadata{}, fmt.Errorf("%w: reference %q needs owner and member", ErrBadMapping, s)
	}

	if i := strings.IndexByte(member, '('); i >= 0 {
		name, desc := member[:i], member[i:]
		if name == "" || !ValidMethodDesc(desc) {
			return Metadata{}, fmt.Errorf("%w: bad method reference %q", ErrBadMapping, s)
		}

		return MethodRef(owner, name, desc), nil
	}

	name, typ, _ := strings.Cut(member, ":")
	if name == "" || (typ != "" && !ValidFieldDesc(typ)) {
		return Metadata{}, fmt.Errorf("%w: bad field reference %q", ErrBadMapping, s)
	}

	return FieldRef(owner, name, typ), nil
}

// MustParseRef is like ParseRef but panics on error. Intended for
// package-level patch declarations.
func MustParseRef(s string) Metadata {
	md, err := ParseRef(s)
	if err != nil {
		panic(err)
	}

	return md
}
