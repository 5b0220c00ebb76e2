// Package trace records what the compiler front end is doing: driver
// operations, pipeline stages and per-file work.
//
// Enable tracing from the command line:
//
//	quill check --trace=- --trace-level=phase prog.ql
//
// Implementations:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or ndjson)
//   - RingTracer: keeps the last N events for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase shows driver and stage boundaries, detail
// adds per-file spans, debug shows everything.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
