// Package patch discovers the injection points a patch declares and turns
// the accepted ones into transformer units.
package patch

import (
	"fmt"
	"strings"

	"classpatch/internal/mapping"
)

// Patch is a value whose injection points are listed by Injections, in
// declaration order.
type Patch interface {
	Injections() []Injection
}

// Named is implemented by patches that choose their display name.
type Named interface {
	Name() string
}

// Injection declares one injection point: a callable bound to a target
// method and an optional gating predicate. Both Fn and Target are required;
// a declaration missing either one is not an injection point.
//
// Fn is a func whose parameters are each one of *classfile.MethodNode,
// mapping.Class, mapping.Field or mapping.Method. Args holds the mapping
// metadata of the descriptor parameters by position.
type Injection struct {
	Name   string
	Fn     any
	Target *mapping.MethodMapping
	When   string
	Args   []mapping.Metadata
}

// Name returns the display name of p.
func Name(p Patch) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}

	name := fmt.Sprintf("%T", p)
	name = strings.TrimPrefix(name, "*")

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// Func is a Patch built from a list of injections.
type Func struct {
	PatchName string
	Points    []Injection
}

// Name implements Named.
func (f Func) Name() string { return f.PatchName }

// Injections implements Patch.
func (f Func) Injections() []Injection { return f.Points }
