// Package metrics provides a lightweight AWS CloudWatch Embedded Metrics Format (EMF)
// recorder. EMF metrics are written as single JSON lines, which CloudWatch Logs
// extracts into metrics without any API calls.
//
// Output goes to stdout when running inside Lambda and is discarded elsewhere,
// so CLI output stays clean. CREATOR_METRICS=stdout|stderr|off overrides the
// default, and SetOutput redirects it explicitly (tests, web server).
//
// See: https://docs.aws.amazon.com/AmazonCloudWatch/latest/monitoring/CloudWatch_Embedded_Metric_Format_Specification.html
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

// Namespace is the CloudWatch namespace for every metric the service emits.
const Namespace = "CreatorStudio"

// Standard CloudWatch metric units.
const (
	UnitMilliseconds = "Milliseconds"
	UnitCount        = "Count"
	UnitBytes        = "Bytes"
	UnitNone         = "None"
)

type metricDef struct {
	Name string `json:"Name"`
	Unit string `json:"Unit"`
}

type emfDirective struct {
	Timestamp         int64      `json:"Timestamp"`
	CloudWatchMetrics []cwMetric `json:"CloudWatchMetrics"`
}

type cwMetric struct {
	Namespace  string      `json:"Namespace"`
	Dimensions [][]string  `json:"Dimensions"`
	Metrics    []metricDef `json:"Metrics"`
}

var (
	mu      sync.Mutex
	out     io.Writer
	outOnce sync.Once
	service string
)

func defaultOutput() {
	switch os.Getenv("CREATOR_METRICS") {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "off":
		out = io.Discard
	default:
		if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
			out = os.Stdout
		} else {
			out = io.Discard
		}
	}
	service = os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
}

// SetOutput redirects EMF lines to w and returns a function restoring the
// previous writer.
func SetOutput(w io.Writer) (restore func()) {
	outOnce.Do(defaultOutput)
	mu.Lock()
	prev := out
	out = w
	mu.Unlock()
	return func() {
		mu.Lock()
		out = prev
		mu.Unlock()
	}
}

// SetService sets the Service dimension attached to every new Recorder.
// Inside Lambda it defaults to the function name.
func SetService(name string) {
	outOnce.Do(defaultOutput)
	mu.Lock()
	service = name
	mu.Unlock()
}

// Recorder accumulates dimensions, metrics, and properties for a single EMF flush.
// It is NOT safe for concurrent use; create one per operation.
type Recorder struct {
	namespace  string
	dimensions map[string]string
	metrics    map[string]metricDef
	values     map[string]any
	properties map[string]any
}

// New creates a Recorder in the service Namespace.
func New() *Recorder {
	return NewIn(Namespace)
}

// NewIn creates a Recorder in an explicit namespace.
func NewIn(namespace string) *Recorder {
	outOnce.Do(defaultOutput)
	r := &Recorder{
		namespace:  namespace,
		dimensions: make(map[string]string),
		metrics:    make(map[string]metricDef),
		values:     make(map[string]any),
		properties: make(map[string]any),
	}
	mu.Lock()
	if service != "" {
		r.dimensions["Service"] = service
	}
	mu.Unlock()
	return r
}

// Dimension adds an indexed dimension.
func (r *Recorder) Dimension(key, value string) *Recorder {
	r.dimensions[key] = value
	return r
}

// Metric records a named value with a CloudWatch unit.
func (r *Recorder) Metric(name string, value float64, unit string) *Recorder {
	r.metrics[name] = metricDef{Name: name, Unit: unit}
	r.values[name] = value
	return r
}

// Count records a count metric with value 1.
func (r *Recorder) Count(name string) *Recorder {
	return r.Metric(name, 1, UnitCount)
}

// Duration records d as a millisecond metric.
func (r *Recorder) Duration(name string, d time.Duration) *Recorder {
	return r.Metric(name, float64(d.Milliseconds()), UnitMilliseconds)
}

// Property adds a non-metric field, searchable in Logs Insights.
func (r *Recorder) Property(key string, value any) *Recorder {
	r.properties[key] = value
	return r
}

// Flush writes the EMF document as one JSON line. Recorders with no
// metrics write nothing. A Recorder should not be reused after Flush.
func (r *Recorder) Flush() {
	if len(r.metrics) == 0 {
		return
	}

	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	defs := make([]metricDef, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.metrics[name])
	}

	dimKeys := make([]string, 0, len(r.dimensions))
	for k := range r.dimensions {
		dimKeys = append(dimKeys, k)
	}
	sort.Strings(dimKeys)

	doc := make(map[string]any, len(r.dimensions)+len(r.values)+len(r.properties)+1)
	for k, v := range r.properties {
		doc[k] = v
	}
	for k, v := range r.dimensions {
		doc[k] = v
	}
	for k, v := range r.values {
		doc[k] = v
	}
	doc["_aws"] = emfDirective{
		Timestamp: time.Now().UnixMilli(),
		CloudWatchMetrics: []cwMetric{{
			Namespace:  r.namespace,
			Dimensions: [][]string{dimKeys},
			Metrics:    defs,
		}},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emf: failed to marshal metrics: %v\n", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, string(data))
}
