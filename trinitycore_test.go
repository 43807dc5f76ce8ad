package trinitycore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/CooperArea/TrinityCore/bytebuffer"
)

func TestTraceGating(t *testing.T) {
	var out bytes.Buffer
	SetLogWriters(&out)
	defer func() {
		EnableLogging(false)
		SetLogWriters()
	}()

	b := bytebuffer.NewByteBuffer()
	b.WriteUint32(0xDEADBEEF)

	EnableLogging(false)
	b.Hexlike()
	b.PrintStorage()
	if out.Len() != 0 {
		t.Errorf("expected no trace output while disabled, got %q", out.String())
	}

	EnableLogging(true)
	b.Hexlike()
	if !strings.Contains(out.String(), "STORAGE_SIZE: 4") {
		t.Errorf("expected a storage dump, got %q", out.String())
	}

	out.Reset()
	b.PrintStorage()
	if !strings.Contains(out.String(), "239 - 190 - 173 - 222 - ") {
		t.Errorf("expected a decimal byte dump, got %q", out.String())
	}
}

func TestSizeRecorder(t *testing.T) {
	r := NewSizeRecorder()

	for _, size := range []int{40, 45, 50, 4000, 4500} {
		if err := r.RecordSize(size); err != nil {
			t.Error(err)
			return
		}
	}

	b := bytebuffer.NewByteBuffer()
	b.WriteBytes(make([]byte, 100))
	if err := r.Record(b); err != nil {
		t.Error(err)
		return
	}

	if r.Count() != 6 {
		t.Errorf("expected 6 recorded sizes, got %v", r.Count())
	}
	if r.Max() < 4500 {
		t.Errorf("expected max >= 4500, got %v", r.Max())
	}
	if p := r.Percentile(50); p < 40 || p > 4500 {
		t.Errorf("expected the median inside the recorded range, got %v", p)
	}
	if r.Mean() <= 0 {
		t.Errorf("expected a positive mean, got %v", r.Mean())
	}
}

func TestSizeRecorderRejectsOverCeiling(t *testing.T) {
	r := NewSizeRecorder()
	if err := r.RecordSize(bytebuffer.MaxSize * 2); err == nil {
		t.Error("Expected error at recording a size past the buffer ceiling")
	}
}
