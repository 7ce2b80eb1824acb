package logging

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// traceparentHeader is the W3C Trace Context request header.
const traceparentHeader = "traceparent"

var propagator = propagation.TraceContext{}

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// remoteSpan decodes a traceparent header value into a valid span context.
func remoteSpan(header string) (trace.SpanContext, bool) {
	if header == "" {
		return trace.SpanContext{}, false
	}
	carrier := propagation.MapCarrier{traceparentHeader: header}
	sc := trace.SpanContextFromContext(propagator.Extract(context.Background(), carrier))
	return sc, sc.IsValid()
}

func loggerWithTrace(base *zap.Logger, header, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func traceFields(header, projectID string) []zap.Field {
	resource := traceResource(header, projectID)
	if resource == "" {
		return nil
	}
	sc, _ := remoteSpan(header)
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", resource),
		zap.String("logging.googleapis.com/spanId", sc.SpanID().String()),
		zap.Bool("logging.googleapis.com/trace_sampled", sc.IsSampled()),
	}
}

func traceResource(header, projectID string) string {
	if projectID == "" {
		return ""
	}
	sc, ok := remoteSpan(header)
	if !ok {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", projectID, sc.TraceID())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}
