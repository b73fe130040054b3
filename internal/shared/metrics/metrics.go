package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	matchRequestsTotal  atomic.Uint64
	matchCompletedTotal atomic.Uint64
	matchFailedTotal    atomic.Uint64
	matchEventsDropped  atomic.Uint64

	matchScore    = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
	matchDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncMatchRequested counts a match request that reached the service.
func IncMatchRequested() {
	matchRequestsTotal.Add(1)
}

// IncMatchCompleted counts a match that produced a result.
func IncMatchCompleted() {
	matchCompletedTotal.Add(1)
}

// IncMatchFailed counts a match that ended in an error.
func IncMatchFailed() {
	matchFailedTotal.Add(1)
}

// IncMatchEventDropped counts a match event that could not be published.
func IncMatchEventDropped() {
	matchEventsDropped.Add(1)
}

// ObserveMatchScore records a composite score.
func ObserveMatchScore(score int) {
	matchScore.Observe(float64(score))
}

// ObserveMatchDurationMs records a match duration in milliseconds.
func ObserveMatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	matchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "match_requests_total", "Total match requests", matchRequestsTotal.Load())
	writeCounter(&buf, "match_completed_total", "Total matches scored", matchCompletedTotal.Load())
	writeCounter(&buf, "match_failed_total", "Total matches failed", matchFailedTotal.Load())
	writeCounter(&buf, "match_events_dropped_total", "Match events not published", matchEventsDropped.Load())
	writeHistogram(&buf, "match_score", "Composite match score", matchScore.Snapshot())
	writeHistogram(&buf, "match_duration_ms", "Match duration in milliseconds", matchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket that holds it. Counts are made
// cumulative at render time.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
