// Copyright © 2024 The Sonnet authors

package lang

// Profiler is a hook for tracing function applications during evaluation.
// Implementations live outside the runtime core (see x/profiler).
type Profiler interface {
	// IsEnabled determines if we should profile.
	IsEnabled() bool
	// Enable enables the profiler.
	Enable() error
	// Complete flushes any pending profile data.
	Complete() error
	// Start begins tracing an application of fun and returns a closure that
	// ends the trace.
	Start(fun *FunData) func()
}
