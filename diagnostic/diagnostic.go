// Copyright © 2024 The Sonnet authors

// Package diagnostic provides Rust-style annotated error rendering for
// sonnet CLI output.
package diagnostic

import (
	"fmt"

	"github.com/sonnetlang/sonnet/lang"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines (stack trace frames, etc.)
}

// FromError converts a runtime error into a renderable diagnostic.  The
// error condition prefixes the message, the failing location becomes a span,
// and the call trace becomes notes with the entrypoint last.
func FromError(lerr *lang.Error) Diagnostic {
	msg := lerr.Message
	if lerr.Condition != lang.CondError {
		msg = fmt.Sprintf("%s: %s", lerr.Condition, msg)
	}
	d := Diagnostic{
		Severity: SeverityError,
		Message:  msg,
	}
	if lerr.Source != nil {
		d.Spans = append(d.Spans, Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		})
	}
	if lerr.Trace != nil && len(lerr.Trace.Frames) > 0 {
		frames := lerr.Trace.Frames
		for i := len(frames) - 1; i >= 0; i-- {
			d.Notes = append(d.Notes, fmt.Sprintf("height %d: %s", i, frames[i].String()))
		}
	}
	return d
}
