package mapping

// Descriptor is the sealed set of resolved mapping descriptors: Class, Field
// and Method.
type Descriptor interface {
	Kind() Kind
	String() string

	sealed()
}

// Class identifies a class by its symbolic internal name and the name it
// carries in the running artifact.
type Class struct {
	name    string
	runtime string
}

// Name returns the symbolic internal name.
func (c Class) Name() string { return c.name }

// Runtime returns the internal name used by the running artifact.
func (c Class) Runtime() string { return c.runtime }

// Kind implements Descriptor.
func (c Class) Kind() Kind { return KindClass }

// String returns the symbolic internal name.
func (c Class) String() string { return c.name }

// Desc returns the runtime field descriptor of the class, "Lname;".
func (c Class) Desc() string { return ObjectDesc(c.runtime) }

// IsNameEqual reports whether name is either the symbolic or runtime name.
func (c Class) IsNameEqual(name string) bool {
	return name == c.runtime || name == c.name
}

func (Class) sealed() {}

// Field identifies a field by owner, name and type descriptor. The type is
// optional; an untyped Field matches any descriptor.
type Field struct {
	owner       Class
	name        string
	runtime     string
	desc        string
	runtimeDesc string
}

// Owner returns the declaring class.
func (f Field) Owner() Class { return f.owner }

// Name returns the symbolic field name.
func (f Field) Name() string { return f.name }

// RuntimeName returns the field name used by the running artifact.
func (f Field) RuntimeName() string { return f.runtime }

// Desc returns the symbolic type descriptor, or "" when untyped.
func (f Field) Desc() string { return f.desc }

// RuntimeDesc returns the runtime type descriptor, or "" when untyped.
func (f Field) RuntimeDesc() string { return f.runtimeDesc }

// Kind implements Descriptor.
func (f Field) Kind() Kind { return KindField }

// String renders the field as owner.name:desc.
func (f Field) String() string {
	if f.desc == "" {
		return f.owner.name + "." + f.name
	}

	return f.owner.name + "." + f.name + ":" + f.desc
}

// Matches reports whether a field reference names this field, comparing
// either all runtime names or all symbolic names.
func (f Field) Matches(owner, name, desc string) bool {
	runtime := owner == f.owner.runtime && name == f.runtime &&
		(f.runtimeDesc == "" || desc == f.runtimeDesc)
	symbolic := owner == f.owner.name && name == f.name &&
		(f.desc == "" || desc == f.desc)

	return runtime || symbolic
}

func (Field) sealed() {}

// Method identifies a method by owner, name and full method descriptor.
type Method struct {
	owner       Class
	name        string
	runtime     string
	desc        string
	runtimeDesc string
}

// Owner returns the declaring class.
func (m Method) Owner() Class { return m.owner }

// Name returns the symbolic method name.
func (m Method) Name() string { return m.name }

// RuntimeName returns the method name used by the running artifact.
func (m Method) RuntimeName() string { return m.runtime }

// Desc returns the symbolic method descriptor.
func (m Method) Desc() string { return m.desc }

// RuntimeDesc returns the method descriptor with runtime class names.
func (m Method) RuntimeDesc() string { return m.runtimeDesc }

// Kind implements Descriptor.
func (m Method) Kind() Kind { return KindMethod }

// String renders the method as owner.name(desc).
func (m Method) String() string {
	return m.owner.name + "." + m.name + m.desc
}

// IsNameEqual reports whether name is the symbolic or runtime method name.
func (m Method) IsNameEqual(name string) bool {
	return name == m.runtime || name == m.name
}

// IsDescriptorEqual reports whether desc is the symbolic or runtime descriptor.
func (m Method) IsDescriptorEqual(desc string) bool {
	return desc == m.runtimeDesc || desc == m.desc
}

// Matches reports whether a method record with the given name and descriptor
// is this method. Name and descriptor must both match under the same naming
// scheme; a runtime name paired with a symbolic descriptor never matches
// unless the two schemes coincide.
func (m Method) Matches(name, desc string) bool {
	return (name == m.runtime && desc == m.runtimeDesc) ||
		(name == m.name && desc == m.desc)
}

// MatchesRef reports whether an invoke instruction's reference targets this
// method.
func (m Method) MatchesRef(owner, name, desc string) bool {
	return (owner == m.owner.runtime && name == m.runtime && desc == m.runtimeDesc) ||
		(owner == m.owner.name && name == m.name && desc == m.desc)
}

func (Method) sealed() {}
