package metrics

import (
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 50, 100})
	h.Observe(5)
	h.Observe(40)
	h.Observe(100)
	h.Observe(150)

	snap := h.Snapshot()
	var cumulative uint64
	want := []uint64{1, 2, 3}
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		if cumulative != want[i] {
			t.Fatalf("bucket %v: expected %d, got %d", snap.buckets[i], want[i], cumulative)
		}
	}
	if snap.count != 4 || snap.sum != 295 {
		t.Fatalf("unexpected totals: count=%d sum=%v", snap.count, snap.sum)
	}
}

func TestRenderIncludesMatchSeries(t *testing.T) {
	IncMatchRequested()
	IncMatchCompleted()
	ObserveMatchScore(87)
	ObserveMatchDurationMs(3)

	out := Render()
	for _, series := range []string{
		"match_requests_total",
		"match_completed_total",
		"match_failed_total",
		"match_events_dropped_total",
		`match_score_bucket{le="90"}`,
		`match_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, series) {
			t.Fatalf("expected %s in output:\n%s", series, out)
		}
	}
}
