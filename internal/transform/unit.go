package transform

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"go.uber.org/zap"

	"classpatch/internal/classfile"
	"classpatch/internal/logging"
	"classpatch/internal/mapping"
	"classpatch/internal/match"
	"classpatch/internal/plan"
)

// maxSuggestions bounds the closest-method list attached to a missing target.
const maxSuggestions = 3

// Unit is the transformer built for one injection point. It holds no mutable
// state besides its invocation state, so it can be presented the same class
// again on retransformation.
type Unit struct {
	patch  string
	name   string
	target mapping.Method
	plan   *plan.Plan
	logger *zap.Logger

	state atomic.Int32
}

// NewUnit creates a unit for the injection name of patch, bound to target
// and the argument plan built for its body. A nil logger discards output.
func NewUnit(patch, name string, target mapping.Method, p *plan.Plan, logger *zap.Logger) *Unit {
	u := &Unit{
		patch:  patch,
		name:   name,
		target: target,
		plan:   p,
	}
	u.logger = logging.OrNop(logger).With(zap.Stringer("target", u))

	return u
}

// Patch returns the name of the originating patch.
func (u *Unit) Patch() string { return u.patch }

// Name returns the injection name.
func (u *Unit) Name() string { return u.name }

// Target returns the resolved target method.
func (u *Unit) Target() mapping.Method { return u.target }

// State returns the current invocation state.
func (u *Unit) State() State { return State(u.state.Load()) }

// String renders the target method descriptor.
func (u *Unit) String() string { return u.target.String() }

// Targets returns the runtime internal name of the target's owning class.
func (u *Unit) Targets() []Target {
	return []Target{Target(u.target.Owner().Runtime())}
}

// CastVote always proceeds: selection already happened through Targets.
func (u *Unit) CastVote(Context) Vote {
	return VoteYes
}

// Transform applies the injection and logs its failure, if any. The
// presented class is always returned.
func (u *Unit) Transform(class *classfile.ClassNode, _ Context) *classfile.ClassNode {
	return u.Report(u.Apply(class))
}

// Apply locates the target method in class and invokes the injection body
// with the planned arguments. Failures are returned in Result.Err and never
// logged here.
func (u *Unit) Apply(class *classfile.ClassNode) Result {
	u.state.Store(int32(StateRunning))
	defer u.state.Store(int32(StateIdle))

	res := Result{Class: class}

	node := u.find(class)
	if node == nil {
		res.Err = fmt.Errorf("%w: %s in %s", ErrTargetNotFound, u, className(class))
		res.Suggestions = u.suggest(class)

		return res
	}

	res.Method = node

	args, err := u.plan.Arguments(node)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", u, err)

		return res
	}

	u.logger.Debug("Invoking injection",
		zap.String("injection", u.name),
		zap.String("class", class.Name))

	if err := u.invoke(args); err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", ErrInjectionFailed, u, Cause(err))
	}

	return res
}

// Report logs a failed result at error level and returns its class.
func (u *Unit) Report(res Result) *classfile.ClassNode {
	if res.Err == nil {
		return res.Class
	}

	fields := []zap.Field{
		zap.String("injection", u.name),
		zap.String("class", className(res.Class)),
		zap.String("kind", Kind(res.Err)),
		zap.Error(res.Err),
	}
	if len(res.Suggestions) > 0 {
		fields = append(fields, zap.Strings("closest", res.Suggestions))
	}

	msg := "Injection failed"
	if Kind(res.Err) == "TargetNotFound" {
		msg = "Target method not found"
	}

	u.logger.Error(msg, fields...)

	return res.Class
}

// find returns the first method record whose name and descriptor both match
// the target.
func (u *Unit) find(class *classfile.ClassNode) *classfile.MethodNode {
	if class == nil {
		return nil
	}

	for _, m := range class.Methods {
		if m != nil && u.target.Matches(m.Name, m.Desc) {
			return m
		}
	}

	return nil
}

func (u *Unit) suggest(class *classfile.ClassNode) []string {
	if class == nil || len(class.Methods) == 0 {
		return nil
	}

	targets := []match.Member{
		{Name: u.target.Name(), Desc: u.target.Desc()},
	}
	if u.target.RuntimeName() != u.target.Name() || u.target.RuntimeDesc() != u.target.Desc() {
		targets = append(targets, match.Member{Name: u.target.RuntimeName(), Desc: u.target.RuntimeDesc()})
	}

	candidates := make([]match.Member, 0, len(class.Methods))
	for _, m := range class.Methods {
		if m != nil {
			candidates = append(candidates, match.Member{Name: m.Name, Desc: m.Desc})
		}
	}

	return match.Suggest(targets, candidates, maxSuggestions)
}

// invoke calls the injection body. A panic or a non-nil trailing error
// result comes back as an *InvocationError.
func (u *Unit) invoke(args []reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{Target: u.String(), Err: panicError(r)}
		}
	}()

	out := u.plan.Func().Call(args)

	if u.plan.ReturnsError() {
		if e, _ := out[len(out)-1].Interface().(error); e != nil {
			return &InvocationError{Target: u.String(), Err: e}
		}
	}

	return nil
}

func className(class *classfile.ClassNode) string {
	if class == nil {
		return "<nil>"
	}

	return class.Name
}
