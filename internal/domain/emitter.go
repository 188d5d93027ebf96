package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	m "modconcat.dev/pkg/modconcat/internal/model"
	"modconcat.dev/pkg/modconcat/internal/shim"
)

type emitterState int

const (
	stateHeader emitterState = iota
	stateBody
	stateEnd
	stateClosed
)

// ModuleObserver is notified after each module has been wrapped.
type ModuleObserver func(record m.ModuleRecord, size int)

// EmitterOption customises an Emitter.
type EmitterOption func(*Emitter)

// WithModuleObserver registers fn to be called for every emitted module.
func WithModuleObserver(fn ModuleObserver) EmitterOption {
	return func(e *Emitter) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// WithTemplates replaces the embedded runtime templates.
func WithTemplates(templates shim.Templates) EmitterOption {
	return func(e *Emitter) {
		e.templates = templates
	}
}

// Emitter produces one bundle as a pull-driven sequence of chunks: the
// runtime header, one wrapped chunk per module in identifier order, the
// footer, then end-of-output. Work happens only when a chunk is pulled.
// An Emitter is not safe for concurrent use.
type Emitter struct {
	fs          adapter.SourceFSAdapter
	graph       *Graph
	diagnostics *Diagnostics
	rewriter    *Rewriter
	templates   shim.Templates
	observers   []ModuleObserver
	state       emitterState
}

// NewEmitter prepares a bundle rooted at entry. Nothing is read until the
// first body chunk is requested.
func NewEmitter(
	ctx context.Context,
	entry m.Path,
	policy *Policy,
	fsAdapter adapter.SourceFSAdapter,
	resolver adapter.ModuleResolver,
	opts ...EmitterOption,
) (*Emitter, error) {
	abs, err := fsAdapter.AbsPath(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("resolve entry %s: %w", entry, err)
	}

	graph := NewGraph(abs)

	e := &Emitter{
		fs:          fsAdapter,
		graph:       graph,
		diagnostics: NewDiagnostics(),
		rewriter:    NewRewriter(policy, graph, resolver, fsAdapter),
		templates:   shim.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Next returns the next chunk of output. After the footer it returns io.EOF
// once; a fatal error is returned once and followed by io.EOF. Any later
// call returns model.ErrStreamClosed.
func (e *Emitter) Next(ctx context.Context) ([]byte, error) {
	switch e.state {
	case stateHeader:
		e.state = stateBody
		return []byte(e.templates.Header), nil

	case stateBody:
		if err := ctx.Err(); err != nil {
			e.state = stateEnd
			return nil, err
		}

		record, ok := e.graph.NextPending()
		if !ok {
			e.state = stateEnd
			return []byte(e.templates.Footer), nil
		}

		chunk, err := e.process(ctx, record)
		if err != nil {
			slog.Error("Bundling failed", "path", record.Path, "error", err)
			e.state = stateEnd

			return nil, err
		}

		return chunk, nil

	case stateEnd:
		e.state = stateClosed
		return nil, io.EOF

	default:
		return nil, m.ErrStreamClosed
	}
}

func (e *Emitter) process(ctx context.Context, record m.ModuleRecord) ([]byte, error) {
	src, err := e.fs.ReadFile(ctx, record.Path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		return nil, &m.BundleError{Kind: m.ErrIO, Path: record.Path, Cause: err}
	}

	outcome, err := e.rewriter.Rewrite(ctx, src, record.Path, record.ID)
	if err != nil {
		return nil, err
	}

	e.diagnostics.Record(outcome)
	e.graph.MarkProcessed(record.ID)

	chunk := e.templates.WrapFile(record.ID, record.Path, outcome.Code)

	slog.Debug("Emitted module", "id", record.ID, "path", record.Path, "bytes", len(chunk), "dependencies", len(outcome.Dependencies))

	record.Processed = true
	for _, observer := range e.observers {
		observer(record, len(chunk))
	}

	return chunk, nil
}

// Stats returns the bundle statistics, or model.ErrIncomplete while modules
// are still pending.
func (e *Emitter) Stats() (m.Stats, error) {
	return e.diagnostics.Snapshot(e.graph)
}

// Reader adapts the emitter to io.Reader. A fatal error surfaces from Read
// after the preceding chunks have been delivered.
func (e *Emitter) Reader(ctx context.Context) io.Reader {
	return &emitterReader{ctx: ctx, emitter: e}
}

type emitterReader struct {
	ctx     context.Context
	emitter *Emitter
	buf     []byte
}

func (r *emitterReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(r.buf) == 0 {
		chunk, err := r.emitter.Next(r.ctx)
		if err != nil {
			if errors.Is(err, m.ErrStreamClosed) {
				return 0, io.EOF
			}

			return 0, err
		}

		r.buf = chunk
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]

	return n, nil
}

// Stream pushes chunks on an unbuffered channel, so production is paced by
// the consumer. The chunk channel is closed at end-of-output. A fatal error
// is delivered on the error channel before the chunk channel closes; both
// channels are closed when the goroutine exits. A consumer that stops
// receiving before the chunk channel closes must cancel ctx, otherwise the
// goroutine stays blocked on the next send.
func (e *Emitter) Stream(ctx context.Context) (<-chan []byte, <-chan error) {
	chunks := make(chan []byte)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		for {
			chunk, err := e.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				errs <- err
				return
			}

			select {
			case chunks <- chunk:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}
