package compiler

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func init() {
	if gtrace.SyntaxTracer == nil || gtrace.SyntaxTracer == gtrace.NoOpTrace {
		gtrace.SyntaxTracer = gologadapter.New()
	}
}

// T traces to the global syntax tracer
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
