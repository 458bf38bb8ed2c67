package tracetask

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Func is a unit of asynchronous work producing a value or an error.
type Func[T any] func(ctx context.Context) (T, error)

// Policy selects how a task's completion is reported.
type Policy int

const (
	// Logged emits a completion event on success and on failure.
	Logged Policy = iota
	// Silent suppresses the success event. Failures are always recorded.
	Silent
)

type Option func(*Options)

type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

// WithObserver attaches a lifecycle observer to the task.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Task pairs a computation with the span it runs under and a completion
// policy. A task exclusively owns its computation and is single-use.
type Task[T any] struct {
	span   Span
	fn     Func[T]
	policy Policy
	opts   Options
	used   atomic.Bool
}

// New returns a task with the Logged policy. Construction performs no I/O
// and does not start the computation.
func New[T any](span Span, fn Func[T], optFns ...Option) *Task[T] {
	return newTask(span, fn, Logged, optFns)
}

// NewShortLived returns a task with the Silent policy, for frequent short
// operations whose normal completion is not interesting.
func NewShortLived[T any](span Span, fn Func[T], optFns ...Option) *Task[T] {
	return newTask(span, fn, Silent, optFns)
}

func newTask[T any](span Span, fn Func[T], policy Policy, optFns []Option) *Task[T] {
	t := &Task[T]{span: span, fn: fn, policy: policy, opts: defaultOptions()}
	for _, opt := range optFns {
		opt(&t.opts)
	}
	return t
}

// Instrument converts the task into a drivable unit. The returned func
// starts the task's span as a child of its ctx argument, runs the
// computation inside it, records the outcome on the span, and passes the
// result through unchanged. A task that is instrumented but never driven
// starts no span and records nothing.
//
// Instrument consumes the task; calling it a second time panics.
func (t *Task[T]) Instrument() Func[T] {
	if t.used.Swap(true) {
		panic("tracetask: task already instrumented")
	}
	span := t.span
	fn := t.fn
	policy := t.policy
	obs := t.opts.Observer

	return func(ctx context.Context) (T, error) {
		if fn == nil {
			var zero T
			return zero, nil
		}
		ctx, sp := span.start(ctx)
		defer sp.End()

		if obs != nil {
			obs.TaskStarted(ctx, span.name)
		}
		start := time.Now()
		v, err := fn(ctx)
		elapsed := time.Since(start)
		if obs != nil {
			obs.TaskFinished(ctx, span.name, elapsed, err)
		}

		if err != nil {
			chain := FormatChain(err)
			sp.AddEvent(span.name+" failed: "+chain, trace.WithAttributes(
				attribute.String("error", chain),
				attribute.Stringer("elapsed", elapsed),
			))
			sp.SetStatus(codes.Error, chain)
			return v, err
		}
		if policy == Logged {
			sp.AddEvent(span.name+" done", trace.WithAttributes(
				attribute.Stringer("elapsed", elapsed),
			))
		}
		sp.SetStatus(codes.Ok, "")
		return v, nil
	}
}

// Run instruments the task and drives it to completion on ctx.
func (t *Task[T]) Run(ctx context.Context) (T, error) {
	return t.Instrument()(ctx)
}
