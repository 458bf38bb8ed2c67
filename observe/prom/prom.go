// Package prom exports task lifecycle metrics through Prometheus.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-tracetask/tracetask"
)

// Observer counts task starts and completions and tracks task wall time,
// labeled by task name. It implements the tracetask.Observer interface.
type Observer struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ tracetask.Observer = (*Observer)(nil)

// New builds an Observer and registers its collectors on reg.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracetask_tasks_started_total",
			Help: "Tasks that began executing.",
		}, []string{"task"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracetask_tasks_finished_total",
			Help: "Tasks that ran to completion, by outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracetask_task_duration_seconds",
			Help:    "Wall time spent executing tasks.",
			Buckets: prometheus.DefBuckets,
		}, []string{"task"}),
	}
	for _, c := range []prometheus.Collector{o.started, o.finished, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// TaskStarted increments the started counter for the task.
func (o *Observer) TaskStarted(_ context.Context, name string) {
	o.started.WithLabelValues(name).Inc()
}

// TaskFinished records the outcome and duration for the task.
func (o *Observer) TaskFinished(_ context.Context, name string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.finished.WithLabelValues(name, outcome).Inc()
	o.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}
