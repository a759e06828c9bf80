package transform

import (
	"classpatch/internal/classfile"
)

//go:generate go tool stringer -type=Vote -trimprefix=Vote -output=vote_string.go

// Vote is a transformer's answer to whether it wants to run on a class.
type Vote int

const (
	// VoteYes runs the transformer.
	VoteYes Vote = iota
	// VoteNo skips the transformer for this class.
	VoteNo
	// VoteDefer skips the transformer for this pass.
	VoteDefer
	// VoteReject aborts the transformation of the class.
	VoteReject
)

// Target is the internal name of a class a transformer wants presented.
type Target string

// Context describes one presentation of a class to a transformer.
type Context struct {
	// Class is the internal name of the presented class.
	Class string
	// Pass counts how many times the class was presented before, so a
	// retransformation has Pass > 0.
	Pass int
}

// State is the invocation state of a Unit.
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one Apply call. Class is always the presented
// class; Method is the matched record when one was found.
type Result struct {
	Class  *classfile.ClassNode
	Method *classfile.MethodNode
	Err    error

	// Suggestions lists the closest method records when the target was not
	// found.
	Suggestions []string
}

// OK reports whether the injection ran to completion.
func (r Result) OK() bool {
	return r.Err == nil
}
