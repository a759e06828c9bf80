package mapping

import (
	"fmt"
	"strings"
)

// ParseMethodDesc splits a method descriptor into its parameter type
// descriptors and its return type descriptor.
// "(ILjava/lang/String;[J)V" -> ["I", "Ljava/lang/String;", "[J"], "V".
func ParseMethodDesc(desc string) ([]string, string, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, "", fmt.Errorf("%w: method descriptor %q must start with '('", ErrBadMapping, desc)
	}

	var args []string

	i := 1
	for i < len(desc) && desc[i] != ')' {
		end, ok := scanType(desc, i)
		if !ok {
			return nil, "", fmt.Errorf("%w: bad parameter type in %q at %d", ErrBadMapping, desc, i)
		}

		args = append(args, desc[i:end])
		i = end
	}

	if i >= len(desc) {
		return nil, "", fmt.Errorf("%w: method descriptor %q has no ')'", ErrBadMapping, desc)
	}

	ret := desc[i+1:]
	if ret != "V" {
		if end, ok := scanType(ret, 0); !ok || end != len(ret) {
			return nil, "", fmt.Errorf("%w: bad return type in %q", ErrBadMapping, desc)
		}
	}

	return args, ret, nil
}

// ValidFieldDesc reports whether desc is exactly one field type descriptor.
func ValidFieldDesc(desc string) bool {
	end, ok := scanType(desc, 0)
	return ok && end == len(desc)
}

// ValidMethodDesc reports whether desc is a well formed method descriptor.
func ValidMethodDesc(desc string) bool {
	_, _, err := ParseMethodDesc(desc)
	return err == nil
}

// scanType returns the end offset of the field type starting at s[i].
func scanType(s string, i int) (int, bool) {
	for i < len(s) && s[i] == '[' {
		i++
	}

	if i >= len(s) {
		return i, false
	}

	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1, true
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return i, false
		}

		return i + end + 1, true
	default:
		return i, false
	}
}

// RemapDesc rewrites every class name embedded in a field or method
// descriptor through fn. Malformed descriptors are returned unchanged.
func RemapDesc(desc string, fn func(string) string) string {
	if fn == nil || !strings.Contains(desc, "L") {
		return desc
	}

	var b strings.Builder

	b.Grow(len(desc))

	for i := 0; i < len(desc); {
		if desc[i] != 'L' {
			b.WriteByte(desc[i])
			i++

			continue
		}

		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return desc
		}

		b.WriteByte('L')
		b.WriteString(fn(desc[i+1 : i+end]))
		b.WriteByte(';')
		i += end + 1
	}

	return b.String()
}

// ObjectDesc returns the field descriptor of a class internal name.
// "a/b/C" -> "La/b/C;".
func ObjectDesc(internalName string) string {
	return "L" + internalName + ";"
}
