// Package tracetask attaches OpenTelemetry spans to units of asynchronous
// work. A task pairs a computation with a span descriptor and a completion
// policy; driving the task runs the computation inside the span and records
// the outcome, including the full error cause chain on failure.
package tracetask
