// Package errgroup drives traced tasks under a golang.org/x/sync errgroup,
// so a set of instrumented operations shares fail-fast cancellation.
package errgroup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-tracetask/tracetask"
)

// Group runs traced tasks with errgroup semantics: the first failing task
// cancels the group context and Wait returns the first error.
type Group struct {
	g   *errgroup.Group
	ctx context.Context
}

// WithContext creates a Group bound to ctx. The returned context is
// canceled when any task passed to Go fails.
func WithContext(ctx context.Context) (*Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx}, gctx
}

// SetLimit bounds the number of tasks running concurrently. It must be
// called before the first Go.
func (g *Group) SetLimit(n int) { g.g.SetLimit(n) }

// Wait blocks until all tasks have returned and yields the first error.
func (g *Group) Wait() error { return g.g.Wait() }

// Go drives t on the group. The task's value is discarded; its error, if
// any, cancels the group.
func Go[T any](g *Group, t *tracetask.Task[T]) {
	if t == nil {
		return
	}
	fn := t.Instrument()
	g.g.Go(func() error {
		_, err := fn(g.ctx)
		return err
	})
}
