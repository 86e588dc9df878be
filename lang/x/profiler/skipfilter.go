package profiler

import "github.com/sonnetlang/sonnet/lang"

// SkipFilter reports whether an application of fun should be left out of the
// trace.
type SkipFilter func(fun *lang.FunData) bool

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithSkipIntrinsics filters standard-library applications out of the trace,
// leaving only user-defined functions and native extensions.
func WithSkipIntrinsics() Option {
	return WithSkipFilter(func(fun *lang.FunData) bool {
		return fun.Kind == lang.FunIntrinsic
	})
}
