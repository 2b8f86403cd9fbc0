package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	resumeCreatedTotal   atomic.Uint64
	resumeUpdatedTotal   atomic.Uint64
	resumeDeletedTotal   atomic.Uint64
	uploadAcceptedTotal  atomic.Uint64
	uploadRejectedTotal  atomic.Uint64
	enhanceTotal         atomic.Uint64
	enhanceFailedTotal   atomic.Uint64

	enhanceDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncResumeCreated increments the created counter.
func IncResumeCreated() {
	resumeCreatedTotal.Add(1)
}

// IncResumeUpdated increments the updated counter.
func IncResumeUpdated() {
	resumeUpdatedTotal.Add(1)
}

// IncResumeDeleted increments the deleted counter.
func IncResumeDeleted() {
	resumeDeletedTotal.Add(1)
}

// IncUploadAccepted increments the accepted uploads counter.
func IncUploadAccepted() {
	uploadAcceptedTotal.Add(1)
}

// IncUploadRejected increments the rejected uploads counter.
func IncUploadRejected() {
	uploadRejectedTotal.Add(1)
}

// IncEnhance increments the enhancement requests counter.
func IncEnhance() {
	enhanceTotal.Add(1)
}

// IncEnhanceFailed increments the failed enhancements counter.
func IncEnhanceFailed() {
	enhanceFailedTotal.Add(1)
}

// ObserveEnhanceDurationMs records an enhancement round trip in milliseconds.
func ObserveEnhanceDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	enhanceDuration.Observe(value)
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
	writeCounter(&buf, "resume_created_total", "Total resume drafts created", resumeCreatedTotal.Load())
	writeCounter(&buf, "resume_updated_total", "Total resume drafts updated", resumeUpdatedTotal.Load())
	writeCounter(&buf, "resume_deleted_total", "Total resume drafts deleted", resumeDeletedTotal.Load())
	writeCounter(&buf, "upload_accepted_total", "Total resume file uploads accepted", uploadAcceptedTotal.Load())
	writeCounter(&buf, "upload_rejected_total", "Total resume file uploads rejected", uploadRejectedTotal.Load())
	writeCounter(&buf, "enhance_total", "Total enhancement requests", enhanceTotal.Load())
	writeCounter(&buf, "enhance_failed_total", "Total failed enhancement requests", enhanceFailedTotal.Load())
	writeHistogram(&buf, "enhance_duration_ms", "Enhancement duration in milliseconds", enhanceDuration.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
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

// NowMillis returns the current time in milliseconds for duration observations.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
