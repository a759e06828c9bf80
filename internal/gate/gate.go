// Package gate decides whether a candidate injection is registered, based on
// the service flags present in the host environment.
//
// A predicate is a service name with an optional leading "!":
//
//	"optifine"   register only when optifine is present
//	"!optifine"  register only when optifine is absent
//	""           always register
package gate

import (
	"slices"
	"strings"
)

// Services is the read-only set of capability names present in the current
// host environment.
type Services struct {
	names map[string]struct{}
}

// NewServices builds a service set. Blank names are dropped.
func NewServices(names ...string) Services {
	s := Services{names: make(map[string]struct{}, len(names))}

	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s.names[n] = struct{}{}
		}
	}

	return s
}

// Has reports whether the named service is present.
func (s Services) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of services.
func (s Services) Len() int {
	return len(s.names)
}

// Names returns the service names in sorted order.
func (s Services) Names() []string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

// Predicate is a parsed gating predicate.
type Predicate struct {
	Negated bool
	Service string
}

// Parse parses a predicate string. The zero Predicate (empty Service) always
// registers.
func Parse(predicate string) Predicate {
	predicate = strings.TrimSpace(predicate)

	if rest, ok := strings.CutPrefix(predicate, "!"); ok {
		return Predicate{Negated: true, Service: strings.TrimSpace(rest)}
	}

	return Predicate{Service: predicate}
}

// IsZero reports whether the predicate is absent.
func (p Predicate) IsZero() bool {
	return p.Service == ""
}

// Eval evaluates the predicate against services.
func (p Predicate) Eval(services Services) bool {
	if p.IsZero() {
		return true
	}

	return services.Has(p.Service) != p.Negated
}

// String renders the predicate in its source form.
func (p Predicate) String() string {
	if p.Negated {
		return "!" + p.Service
	}

	return p.Service
}

// ShouldRegister reports whether an injection gated on predicate should be
// registered given services.
func ShouldRegister(predicate string, services Services) bool {
	return Parse(predicate).Eval(services)
}
