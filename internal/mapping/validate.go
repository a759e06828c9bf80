package mapping

import (
	"fmt"

	"classpatch/internal/diagnostic"
)

// Validate validates a table file. It checks names and descriptors are well
// formed and that no class or member is listed twice; it does not check the
// runtime names against any class path.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	seenClasses := map[string]struct{}{}

	for i := range f.Classes {
		c := &f.Classes[i]
		if c.Name == "" {
			res.AddError(diagnostic.CodeEmptyName, fmt.Sprintf("class entry %d has no name", i), "", "")
			continue
		}

		if _, ok := seenClasses[c.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateClass, fmt.Sprintf("duplicate class %q", c.Name), c.Name, "")
			continue
		}

		seenClasses[c.Name] = struct{}{}

		validateFields(res, c)
		validateMethods(res, c)
	}

	return res
}

func validateFields(res *diagnostic.Diagnostics, c *ClassEntry) {
	seen := map[string]struct{}{}

	for i, fe := range c.Fields {
		if fe.Name == "" {
			res.AddError(diagnostic.CodeEmptyName, fmt.Sprintf("field entry %d has no name", i), c.Name, "")
			continue
		}

		if fe.Desc != "" && !ValidFieldDesc(fe.Desc) {
			res.AddError(diagnostic.CodeBadDescriptor,
				fmt.Sprintf("bad field descriptor %q", fe.Desc), c.Name, fe.Name)
		}

		if _, ok := seen[fe.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("duplicate field %q", fe.Name), c.Name, fe.Name)

			continue
		}

		seen[fe.Name] = struct{}{}
	}
}

func validateMethods(res *diagnostic.Diagnostics, c *ClassEntry) {
	seen := map[string]struct{}{}

	for i, me := range c.Methods {
		if me.Name == "" {
			res.AddError(diagnostic.CodeEmptyName, fmt.Sprintf("method entry %d has no name", i), c.Name, "")
			continue
		}

		member := me.Name + me.Desc

		if !ValidMethodDesc(me.Desc) {
			res.AddError(diagnostic.CodeBadDescriptor,
				fmt.Sprintf("bad method descriptor %q", me.Desc), c.Name, member)

			continue
		}

		if _, ok := seen[member]; ok {
			res.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("duplicate method %q", member), c.Name, member)

			continue
		}

		seen[member] = struct{}{}

		if me.Runtime == me.Name && c.Runtime != c.Name {
			res.AddInfo("method_not_renamed",
				"method keeps its symbolic name in a renamed class", c.Name, member)
		}
	}
}
