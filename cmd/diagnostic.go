// Copyright © 2024 The Sonnet authors

package cmd

import (
	"fmt"
	"os"

	"github.com/sonnetlang/sonnet/diagnostic"
	"github.com/sonnetlang/sonnet/lang"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// renderError renders a runtime error with diagnostic formatting to stderr.
// Errors that are not runtime errors render as a bare header.
func renderError(err error) {
	r := newRenderer()
	_ = r.Render(os.Stderr, diagnostic.FromError(lang.AsError(err)))
}

// fatal renders err and exits nonzero.
func fatal(err error) {
	renderError(err)
	os.Exit(1)
}

// fatalUsage reports a flag-level mistake without diagnostic dressing.
func fatalUsage(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}
