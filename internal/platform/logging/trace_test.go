package logging

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	sampledParent   = "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01"
	unsampledParent = "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-00"
	wantTrace       = "projects/test-project/traces/3d23d071b5bfd6579171efce907685cb"
)

// pinProjectID fixes the cached project ID for the duration of a test.
func pinProjectID(t *testing.T, projectID string) {
	t.Helper()
	orig := cachedProjectID
	cachedProjectID = projectID
	projectIDOnce = sync.Once{}
	projectIDOnce.Do(func() {})
	t.Cleanup(func() {
		cachedProjectID = orig
	})
}

func TestTraceFields(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		sampled int64
	}{
		{"sampled", sampledParent, 1},
		{"not sampled", unsampledParent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := traceFields(tt.header, "test-project")
			if len(fields) != 3 {
				t.Fatalf("expected 3 fields, got %d", len(fields))
			}
			if fields[0].Key != "logging.googleapis.com/trace" || fields[0].String != wantTrace {
				t.Fatalf("unexpected trace field: %+v", fields[0])
			}
			if fields[1].Key != "logging.googleapis.com/spanId" || fields[1].String != "08f067aa0ba902b7" {
				t.Fatalf("unexpected span field: %+v", fields[1])
			}
			if fields[2].Key != "logging.googleapis.com/trace_sampled" || fields[2].Type != zapcore.BoolType ||
				fields[2].Integer != tt.sampled {
				t.Fatalf("unexpected sampled field: %+v", fields[2])
			}
		})
	}
}

func TestTraceFieldsInvalid(t *testing.T) {
	invalid := []string{
		"",
		"invalid",
		"00-00000000000000000000000000000000-08f067aa0ba902b7-01",
		"00-3d23d071b5bfd6579171efce907685cb-0000000000000000-01",
		"ff-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01",
		"00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7",
	}
	for _, header := range invalid {
		if fields := traceFields(header, "test-project"); fields != nil {
			t.Fatalf("expected nil fields for %q, got %v", header, fields)
		}
	}
	if fields := traceFields(sampledParent, ""); fields != nil {
		t.Fatalf("expected nil fields when projectID missing, got %v", fields)
	}
}

func TestTraceResource(t *testing.T) {
	if got := traceResource(sampledParent, "test-project"); got != wantTrace {
		t.Fatalf("expected %s, got %s", wantTrace, got)
	}
	if got := traceResource(sampledParent, ""); got != "" {
		t.Fatalf("expected empty resource without project, got %s", got)
	}
	if got := traceResource("invalid", "test-project"); got != "" {
		t.Fatalf("expected empty resource for invalid header, got %s", got)
	}
}

func TestLoggerWithTraceAddsCloudFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	loggerWithTrace(zap.New(core), sampledParent, "test-project", "req-123").Info("hello")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := fieldMap(entries[0])
	if f, ok := fields["logging.googleapis.com/trace"]; !ok || f.String != wantTrace {
		t.Fatalf("trace field mismatch: %+v", fields)
	}
	if f, ok := fields["logging.googleapis.com/spanId"]; !ok || f.String != "08f067aa0ba902b7" {
		t.Fatalf("span field mismatch: %+v", fields)
	}
	if f, ok := fields["requestId"]; !ok || f.String != "req-123" {
		t.Fatalf("requestId field mismatch: %+v", fields)
	}
}

func TestLoggerWithTraceNoFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	logger := loggerWithTrace(base, "", "", "")
	if logger != base {
		t.Fatal("expected base logger to be returned unchanged")
	}
	logger.Info("test")
	if n := len(recorded.All()[0].Context); n != 0 {
		t.Fatalf("expected no context fields, got %d", n)
	}

	if loggerWithTrace(nil, "", "test-project", "req-123") == nil {
		t.Fatal("expected non-nil logger for nil base")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "value", "other"); got != "value" {
		t.Fatalf("expected 'value', got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestResolveProjectIDPriority(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "FIREBASE_PROJECT_ID takes priority",
			envVars:  map[string]string{"FIREBASE_PROJECT_ID": "firebase-proj", "GOOGLE_CLOUD_PROJECT": "gcloud-proj"},
			expected: "firebase-proj",
		},
		{
			name:     "GOOGLE_CLOUD_PROJECT before GCP_PROJECT",
			envVars:  map[string]string{"GOOGLE_CLOUD_PROJECT": "gcloud-proj", "GCP_PROJECT": "gcp-proj"},
			expected: "gcloud-proj",
		},
		{
			name:     "PROJECT_ID as last resort",
			envVars:  map[string]string{"PROJECT_ID": "plain-proj"},
			expected: "plain-proj",
		},
		{
			name:     "nothing set",
			envVars:  map[string]string{},
			expected: "",
		},
	}

	keys := []string{"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			orig := cachedProjectID
			projectIDOnce = sync.Once{}
			t.Cleanup(func() {
				cachedProjectID = orig
				projectIDOnce = sync.Once{}
				projectIDOnce.Do(func() {})
			})

			if got := resolveProjectID(); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
