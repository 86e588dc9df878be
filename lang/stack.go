// Copyright © 2024 The Sonnet authors

package lang

import (
	"fmt"
	"io"

	"github.com/sonnetlang/sonnet/ast"
)

// CallStack is the function call stack for one evaluation.  It exists to
// bound recursion depth and to attach call traces to runtime errors; the
// evaluator does not execute on it.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits stack growth.  Zero or negative means unlimited.
	MaxHeight int
}

// CallFrame is one frame in the CallStack.
type CallFrame struct {
	Source *ast.Location
	Name   string
}

func (f *CallFrame) String() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	if f.Source != nil {
		return fmt.Sprintf("%s: %s", f.Source, name)
	}
	return name
}

// Copy creates a copy of the stack so that it can be attached to a runtime
// error without aliasing future pushes and pops.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{
		Frames:    frames,
		MaxHeight: s.MaxHeight,
	}
}

// Top returns the frame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push adds a frame for the named function.  Push fails with the
// stack-overflow condition when the height limit would be exceeded.
func (s *CallStack) Push(src *ast.Location, name string) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &Error{
			Condition: CondStackOverflow,
			Message:   fmt.Sprintf("call stack exceeded maximum height %d", s.MaxHeight),
			Source:    src,
			Trace:     s.Copy(),
		}
	}
	s.Frames = append(s.Frames, CallFrame{Source: src, Name: name})
	return nil
}

// Pop removes the top frame from the stack.  Pop panics when the stack is
// empty because push/pop pairing is an internal invariant.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints the stack, entrypoint last.
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "  height %d: %s\n", i, s.Frames[i].String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// associate attaches the current stack trace and location to err.  Errors
// that already carry a trace keep it; the innermost trace is the most
// precise.
func (s *CallStack) associate(err *Error, loc *ast.Location) *Error {
	if err.Trace == nil {
		err.Trace = s.Copy()
	}
	if err.Source == nil {
		err.Source = loc
	}
	return err
}
