// Package profiler provides lang.Profiler implementations that annotate
// distributed traces with sonnet function applications.
package profiler

import (
	"fmt"

	"github.com/sonnetlang/sonnet/ast"
	"github.com/sonnetlang/sonnet/lang"
)

// profiler is a minimal lang.Profiler
type profiler struct {
	runtime    *lang.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lang.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fun *lang.FunData) func() {
	return func() {}
}

// FunLabeler produces the span label for a function application.  Returning
// the empty string falls back to the default label.
type FunLabeler func(fun *lang.FunData) string

// WithFunLabeler sets the labeler used to name spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// funLabel returns the span label for fun.
func (p *profiler) funLabel(fun *lang.FunData) string {
	label := ""
	if p.funLabeler != nil {
		label = p.funLabeler(fun)
	}
	if label == "" {
		label = fun.DisplayName()
	}
	return label
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(fun *lang.FunData) bool {
	return !p.enabled || p.skipFilter != nil && p.skipFilter(fun)
}

// funNamespace buckets a function by variant for trace attributes.
func funNamespace(fun *lang.FunData) string {
	switch fun.Kind {
	case lang.FunIntrinsic:
		return "std"
	case lang.FunNative:
		return "native"
	default:
		return "sonnet"
	}
}

// getSourceLoc returns the definition site of fun when one is known.
// Intrinsics and natives have no source.
func getSourceLoc(fun *lang.FunData) *ast.Location {
	if fun.Kind != lang.FunClosure || fun.Body == nil {
		return nil
	}
	return fun.Body.Loc()
}
