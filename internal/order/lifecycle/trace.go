package lifecycle

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type traceInfo struct {
	TraceID string
	SpanID  string
}

// extractTraceInfo reads the active OpenTelemetry span from ctx so audit
// events can be correlated with the trace that produced them. When no span
// is active (unit tests, CLI tools) both fields stay empty and the event is
// written without correlation.
func extractTraceInfo(ctx context.Context) traceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return traceInfo{}
	}
	return traceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}
