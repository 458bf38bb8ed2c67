package tracetask

import (
	"context"
	"time"
)

// Observer receives task lifecycle callbacks. Both calls happen inside the
// task's span context and bracket the computation. Observers are purely
// observational; they cannot alter the task's result.
type Observer interface {
	TaskStarted(ctx context.Context, name string)
	TaskFinished(ctx context.Context, name string, elapsed time.Duration, err error)
}
