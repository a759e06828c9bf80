package plan

import (
	"errors"
	"fmt"
	"reflect"

	"classpatch/internal/classfile"
	"classpatch/internal/mapping"
)

var (
	// ErrNotCallable is returned when an injection body is not a func value.
	ErrNotCallable = errors.New("injection body is not a func")
	// ErrUnknownParameterType is returned when replaying a plan whose callable
	// declares a parameter that is neither the raw node nor a descriptor.
	ErrUnknownParameterType = errors.New("unknown parameter type")
)

var (
	rawNodeType = reflect.TypeFor[*classfile.MethodNode]()
	classType   = reflect.TypeFor[mapping.Class]()
	fieldType   = reflect.TypeFor[mapping.Field]()
	methodType  = reflect.TypeFor[mapping.Method]()
	errorType   = reflect.TypeFor[error]()
)

// KindOf classifies a declared parameter type.
func KindOf(t reflect.Type) mapping.Kind {
	switch t {
	case rawNodeType:
		return mapping.KindRawNode
	case classType:
		return mapping.KindClass
	case fieldType:
		return mapping.KindField
	case methodType:
		return mapping.KindMethod
	default:
		return mapping.KindUnknown
	}
}

// Binding is the argument source of one parameter.
type Binding struct {
	Kind mapping.Kind
	// Type is the declared parameter type.
	Type reflect.Type
	// Value is the resolved descriptor for mapping kinds, nil otherwise.
	Value mapping.Descriptor
}

// Plan is the fixed-order argument plan of one injection callable.
type Plan struct {
	fn           reflect.Value
	bindings     []Binding
	returnsError bool
}

// Build classifies every parameter of fn and resolves the descriptors of the
// mapping-capable ones from args, which is indexed by parameter position.
// Positions without an entry have no metadata.
func Build(fn any, args []mapping.Metadata, r *mapping.Resolver) (*Plan, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: got %T", ErrNotCallable, fn)
	}

	t := v.Type()
	p := &Plan{
		fn:       v,
		bindings: make([]Binding, t.NumIn()),
	}

	for i := range t.NumIn() {
		in := t.In(i)
		b := Binding{Kind: KindOf(in), Type: in}

		if b.Kind.IsMapping() {
			var md mapping.Metadata
			if i < len(args) {
				md = args[i]
			}

			d, err := r.Resolve(b.Kind, md)
			if err != nil {
				return nil, fmt.Errorf("parameter %d (%s): %w", i, in, err)
			}

			b.Value = d
		}

		p.bindings[i] = b
	}

	if n := t.NumOut(); n > 0 && t.Out(n-1) == errorType {
		p.returnsError = true
	}

	return p, nil
}

// Bindings returns the parameter bindings in declaration order.
func (p *Plan) Bindings() []Binding {
	return p.bindings
}

// Func returns the callable.
func (p *Plan) Func() reflect.Value {
	return p.fn
}

// ReturnsError reports whether the callable's last result is an error.
func (p *Plan) ReturnsError() bool {
	return p.returnsError
}

// Arguments replays the plan for one invocation. The same resolved
// descriptors are reused on every call.
func (p *Plan) Arguments(node *classfile.MethodNode) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(p.bindings))

	for i, b := range p.bindings {
		switch {
		case b.Kind == mapping.KindRawNode:
			args[i] = reflect.ValueOf(node)
		case b.Kind.IsMapping():
			args[i] = reflect.ValueOf(b.Value)
		default:
			return nil, fmt.Errorf("%w %s for parameter %d", ErrUnknownParameterType, b.Type, i)
		}
	}

	return args, nil
}
