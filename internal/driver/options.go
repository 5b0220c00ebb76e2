package driver

import (
	"context"
	"time"

	"fortio.org/safecast"

	"quill/internal/diag"
	"quill/internal/observ"
	"quill/internal/source"
	"quill/internal/trace"
)

// Options are shared by every entry point of the driver.
type Options struct {
	// MaxDiagnostics caps the bag of each file; 0 means unlimited.
	MaxDiagnostics int
	// Timer, when set, receives one phase per stage.
	Timer *observ.Timer
	// Observer is notified when stages start and finish.
	Observer PhaseObserver
	// Jobs bounds CheckDir parallelism; 0 selects GOMAXPROCS.
	Jobs int
	// Cache short-circuits Check for files whose content was seen before.
	Cache *DiskCache
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}

// stage runs fn as one pipeline stage: a trace span, a timer phase and a
// pair of observer events.
func (o Options) stage(ctx context.Context, name, path string, fn func(ctx context.Context)) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, name, trace.CurrentSpan(ctx))
	if path != "" {
		span.WithExtra("file", path)
	}
	done := o.Timer.Track(name)
	if o.Observer != nil {
		o.Observer(PhaseEvent{Name: name, Path: path, Status: PhaseStart})
	}

	start := time.Now()
	fn(trace.WithSpan(ctx, span))
	elapsed := time.Since(start)

	span.End("")
	done(path)
	if o.Observer != nil {
		o.Observer(PhaseEvent{Name: name, Path: path, Status: PhaseEnd, Elapsed: elapsed})
	}
}

// loadFile reads path into fs. Failures become an IO diagnostic in a fresh
// bag so directory checks can keep going.
func loadFile(fs *source.FileSet, path string, maxDiagnostics int) (*source.File, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	id, err := fs.Load(path)
	if err != nil {
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return nil, bag, err
	}
	return fs.Get(id), bag, nil
}
