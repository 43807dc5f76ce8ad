package trinitycore

import (
	"sync"

	"github.com/codahale/hdrhistogram"

	"github.com/CooperArea/TrinityCore/bytebuffer"
)

// SizeRecorder aggregates final encoded buffer sizes into a histogram.
// The reservation tiers in bytebuffer are tuned against the size
// classes this exposes, so recording in production lets operators
// confirm the clustering assumption still holds for their workload.
//
// Many connection handlers report into one recorder, so it is
// internally synchronized, unlike the buffers themselves.
type SizeRecorder struct {
	mu sync.Mutex
	h  *hdrhistogram.Histogram
}

// NewSizeRecorder creates a recorder covering every legal buffer size
// at three significant figures
func NewSizeRecorder() *SizeRecorder {
	return &SizeRecorder{
		h: hdrhistogram.New(1, bytebuffer.MaxSize, 3),
	}
}

// Record notes the current size of an encoded buffer
func (r *SizeRecorder) Record(b *bytebuffer.ByteBuffer) error {
	return r.RecordSize(b.Size())
}

// RecordSize notes an encoded size in bytes
func (r *SizeRecorder) RecordSize(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.RecordValue(int64(n))
}

// Count returns the number of sizes recorded
func (r *SizeRecorder) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.TotalCount()
}

// Mean returns the mean recorded size
func (r *SizeRecorder) Mean() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.Mean()
}

// Max returns the largest recorded size
func (r *SizeRecorder) Max() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.Max()
}

// Percentile returns the recorded size at quantile q, where q is in
// (0, 100]
func (r *SizeRecorder) Percentile(q float64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.ValueAtQuantile(q)
}
