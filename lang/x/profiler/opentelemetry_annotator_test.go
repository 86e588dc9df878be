package profiler_test

import (
	"context"
	"testing"

	"github.com/sonnetlang/sonnet/ast"
	"github.com/sonnetlang/sonnet/lang"
	"github.com/sonnetlang/sonnet/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// incProgram applies a user function twice:
//
//	local inc = function(x) x + 1; inc(inc(1))
func incProgram() ast.Expr {
	inc := &ast.Function{
		Name:   "inc",
		Params: ast.RequiredParams("x"),
		Body: &ast.Binary{
			Op:    ast.OpAdd,
			Left:  ast.Ident("x"),
			Right: ast.Num(1),
		},
	}
	inner := &ast.Apply{
		Target: ast.Ident("inc"),
		Args:   ast.PositionalArgs(ast.Num(1)),
	}
	return &ast.Local{
		Binds: []ast.LocalBind{{Name: "inc", Value: inc}},
		Body: &ast.Apply{
			Target: ast.Ident("inc"),
			Args:   ast.PositionalArgs(inner),
		},
	}
}

func newInMemoryTracer(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := newInMemoryTracer(t)

	rt := lang.StandardRuntime()
	ctx := lang.NewContext(rt)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background())
	assert.NoError(t, ppa.Enable())

	v, err := lang.Evaluate(ctx, incProgram())
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v.Num)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	assert.Equal(t, 2, len(spans), "Expected a span per application")
	assert.Equal(t, "inc", spans[0].Name)
	assert.Equal(t, "inc", spans[1].Name)
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := newInMemoryTracer(t)

	rt := lang.StandardRuntime()
	ctx := lang.NewContext(rt)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background(),
		profiler.WithSkipIntrinsics(),
		profiler.WithFunLabeler(func(fun *lang.FunData) string {
			return "app:" + fun.DisplayName()
		}))
	assert.NoError(t, ppa.Enable())

	// Applying the std.length intrinsic must not produce a span; applying
	// the user closure must.
	ctx = ctx.ExtendOne("stdLength", lang.ResolvedThunk(lang.Fun(lang.Intrinsic("length"))))
	prog := &ast.Local{
		Binds: []ast.LocalBind{{Name: "describe", Value: &ast.Function{
			Name:   "describe",
			Params: ast.RequiredParams("x"),
			Body: &ast.Apply{
				Target: ast.Ident("stdLength"),
				Args:   ast.PositionalArgs(ast.Ident("x")),
			},
		}}},
		Body: &ast.Apply{
			Target: ast.Ident("describe"),
			Args:   ast.PositionalArgs(ast.Str("abc")),
		},
	}
	v, err := lang.Evaluate(ctx, prog)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v.Num)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	assert.Equal(t, 1, len(spans), "Expected selective spans")
	assert.Equal(t, "app:describe", spans[0].Name, "Expected custom label")
}
