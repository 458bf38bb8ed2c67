package tracetask

import (
	"context"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName is the scope reported to the tracer provider.
const instrumentationName = "github.com/NetPo4ki/go-tracetask"

// Level is the severity carried by a span descriptor. OpenTelemetry spans
// have no native level, so it is recorded as the "level" span attribute.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Span describes a span to be started when a task is driven: a name, a
// severity level, and attribute fields. It is pure data; nothing is
// reported to the backend until the task runs.
type Span struct {
	name  string
	level Level
	attrs []attribute.KeyValue
	tp    trace.TracerProvider
}

// NewSpan builds a span descriptor. Attrs become span attributes alongside
// the level.
func NewSpan(level Level, name string, attrs ...attribute.KeyValue) Span {
	return Span{name: name, level: level, attrs: attrs}
}

// Name returns the descriptor's span name.
func (s Span) Name() string { return s.name }

// WithTracerProvider returns a copy of the descriptor that starts its span
// from tp instead of the global provider.
func (s Span) WithTracerProvider(tp trace.TracerProvider) Span {
	s.tp = tp
	return s
}

// start begins the described span as a child of whatever span ctx carries.
func (s Span) start(ctx context.Context) (context.Context, trace.Span) {
	tp := s.tp
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	attrs := make([]attribute.KeyValue, 0, len(s.attrs)+1)
	attrs = append(attrs, attribute.Stringer("level", s.level))
	attrs = append(attrs, s.attrs...)
	return tp.Tracer(instrumentationName).Start(ctx, s.name, trace.WithAttributes(attrs...))
}

// CallerName returns the name of the calling function, trimmed to its
// package-qualified form with generic type arguments removed. Handy for
// naming a span after the operation being traced.
func CallerName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "task"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "task"
	}
	return cleanFuncName(fn.Name())
}

// cleanFuncName drops the import path prefix and any "[...]" instantiation
// brackets from a runtime function name.
func cleanFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	skip := 0
	for _, c := range name {
		switch c {
		case '[':
			skip++
		case ']':
			skip--
		default:
			if skip < 1 {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}
