package metrics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestNew_ServiceDimension(t *testing.T) {
	SetService("creator-web")
	t.Cleanup(func() { SetService("") })

	r := New()
	if r.namespace != Namespace {
		t.Errorf("expected namespace %s, got %s", Namespace, r.namespace)
	}
	if r.dimensions["Service"] != "creator-web" {
		t.Errorf("expected Service dimension creator-web, got %s", r.dimensions["Service"])
	}
}

func TestRecorder_FlushOutput(t *testing.T) {
	buf := capture(t)
	SetService("")

	New().
		Dimension("Capability", "suggestions").
		Metric("GeminiApiLatencyMs", 1234.5, UnitMilliseconds).
		Count("GeminiApiCalls").
		Property("model", "gemini-3-pro-preview").
		Flush()

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse EMF output as JSON: %v\nOutput: %s", err, buf.String())
	}

	awsMap, ok := doc["_aws"].(map[string]any)
	if !ok {
		t.Fatal("missing _aws directive in EMF output")
	}
	if _, ok := awsMap["Timestamp"]; !ok {
		t.Error("missing Timestamp in _aws directive")
	}
	cwArr, ok := awsMap["CloudWatchMetrics"].([]any)
	if !ok || len(cwArr) == 0 {
		t.Fatal("CloudWatchMetrics should be a non-empty array")
	}
	cw := cwArr[0].(map[string]any)
	if cw["Namespace"] != Namespace {
		t.Errorf("expected namespace %s, got %v", Namespace, cw["Namespace"])
	}

	if doc["Capability"] != "suggestions" {
		t.Errorf("expected Capability=suggestions, got %v", doc["Capability"])
	}
	if doc["GeminiApiLatencyMs"] != 1234.5 {
		t.Errorf("expected GeminiApiLatencyMs=1234.5, got %v", doc["GeminiApiLatencyMs"])
	}
	if doc["GeminiApiCalls"] != float64(1) {
		t.Errorf("expected GeminiApiCalls=1, got %v", doc["GeminiApiCalls"])
	}
	if doc["model"] != "gemini-3-pro-preview" {
		t.Errorf("expected model property, got %v", doc["model"])
	}
}

func TestRecorder_FlushEmpty(t *testing.T) {
	buf := capture(t)

	New().Dimension("Capability", "noop").Flush()

	if buf.Len() != 0 {
		t.Errorf("expected no output for empty recorder, got: %s", buf.String())
	}
}

func TestRecorder_Duration(t *testing.T) {
	rec := New().Duration("PollMs", 1500*time.Millisecond)

	if rec.values["PollMs"] != float64(1500) {
		t.Errorf("expected PollMs=1500, got %v", rec.values["PollMs"])
	}
	if rec.metrics["PollMs"].Unit != UnitMilliseconds {
		t.Errorf("expected unit Milliseconds, got %v", rec.metrics["PollMs"].Unit)
	}
}

func TestRecorder_Chaining(t *testing.T) {
	rec := New().
		Dimension("Op", "test").
		Metric("Duration", 100, UnitMilliseconds).
		Count("Calls").
		Property("id", "xyz")

	if rec.dimensions["Op"] != "test" {
		t.Error("chaining Dimension failed")
	}
	if rec.values["Duration"] != float64(100) {
		t.Error("chaining Metric failed")
	}
	if rec.values["Calls"] != float64(1) {
		t.Error("chaining Count failed")
	}
	if rec.properties["id"] != "xyz" {
		t.Error("chaining Property failed")
	}
}

func TestSetOutputRestore(t *testing.T) {
	var first, second bytes.Buffer
	restoreFirst := SetOutput(&first)
	restoreSecond := SetOutput(&second)

	New().Count("A").Flush()
	restoreSecond()
	New().Count("B").Flush()
	restoreFirst()

	if !bytes.Contains(second.Bytes(), []byte(`"A"`)) {
		t.Error("expected first flush in second writer")
	}
	if !bytes.Contains(first.Bytes(), []byte(`"B"`)) {
		t.Error("expected second flush in first writer after restore")
	}
}
