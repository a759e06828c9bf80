package mapping

// File represents the root of a remapping table file.
type File struct {
	// Version of the table schema (for future compatibility).
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`

	// Classes lists every remapped class with its members.
	Classes []ClassEntry `yaml:"classes" toml:"classes"`
}

// ClassEntry maps one class and its members.
type ClassEntry struct {
	// Name is the symbolic internal name, e.g. "net/minecraft/entity/Entity".
	Name string `yaml:"name" toml:"name"`

	// Runtime is the internal name in the running artifact. Defaults to Name.
	Runtime string `yaml:"runtime,omitempty" toml:"runtime,omitempty"`

	Fields  []MemberEntry `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Methods []MemberEntry `yaml:"methods,omitempty" toml:"methods,omitempty"`
}

// MemberEntry maps one field or method.
type MemberEntry struct {
	Name string `yaml:"name" toml:"name"`

	// Desc is the symbolic descriptor. Required for methods, optional for fields.
	Desc string `yaml:"desc,omitempty" toml:"desc,omitempty"`

	// Runtime is the member name in the running artifact. Defaults to Name.
	Runtime string `yaml:"runtime,omitempty" toml:"runtime,omitempty"`
}

// Table builds a remapping table from the file. Entries are not validated;
// run Validate first.
func (f *File) Table() *Table {
	t := NewTable()
	if f == nil {
		return t
	}

	for _, c := range f.Classes {
		t.AddClass(c.Name, c.Runtime)

		for _, fe := range c.Fields {
			t.AddField(c.Name, fe.Name, fe.Runtime)
		}

		for _, me := range c.Methods {
			t.AddMethod(c.Name, me.Name, me.Desc, me.Runtime)
		}
	}

	return t
}
