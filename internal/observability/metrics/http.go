// Package metrics provides helpers for emitting standardised application
// metrics through a StatsD sink.
package metrics

import (
	"strconv"
	"time"

	"github.com/campushub/intranet-api/internal/observability/statsd"
)

// HTTPRequest captures details about a served HTTP request for metric emission.
type HTTPRequest struct {
	Method   string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest emits request count and latency metrics.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequest) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method": in.Method,
		"status": strconv.Itoa(in.Status),
		"class":  statusClass(in.Status),
	}

	sink.Count("http.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("http.duration", in.Duration, CloneTags(tags))
	}
}

// statusClass buckets a status code into 2xx/3xx/4xx/5xx for low-cardinality tagging.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
