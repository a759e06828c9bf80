package transform

import (
	"errors"
	"fmt"

	"classpatch/internal/mapping"
	"classpatch/internal/plan"
)

var (
	// ErrTargetNotFound is returned when no method record of the presented
	// class matches the target name and descriptor.
	ErrTargetNotFound = errors.New("target method not found")
	// ErrInjectionFailed is returned when the injection body panicked or
	// returned a non-nil error.
	ErrInjectionFailed = errors.New("injection failed")
	// ErrUnknownParameterType is returned when the injection callable
	// declares a parameter the engine cannot bind.
	ErrUnknownParameterType = plan.ErrUnknownParameterType
)

// InvocationError wraps a failure raised while calling an injection body.
type InvocationError struct {
	Target string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking injection for %s: %v", e.Target, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Cause strips every InvocationError layer from err and returns the deepest
// cause. Errors without such a layer are returned as-is.
func Cause(err error) error {
	for {
		var ie *InvocationError
		if !errors.As(err, &ie) || ie.Err == nil {
			return err
		}

		err = ie.Err
	}
}

// Kind names the failure class of err for logs and reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInjectionFailed):
		return "InjectionBodyFailure"
	case errors.Is(err, ErrUnknownParameterType):
		return "UnknownParameterType"
	case errors.Is(err, ErrTargetNotFound):
		return "TargetNotFound"
	case errors.Is(err, mapping.ErrUnmappedParameter):
		return "UnmappedParameter"
	default:
		return "Unknown"
	}
}

// panicError turns a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}

	return fmt.Errorf("panic: %v", r)
}
