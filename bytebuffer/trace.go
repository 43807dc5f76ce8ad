package bytebuffer

import (
	"fmt"
	"strings"
)

// TraceSink receives storage dumps when detailed packet tracing is
// active. The buffer asks Enabled before any formatting work, so a
// disabled sink costs a single branch per dump call. Keeping this an
// interface leaves the package free of concrete logging dependencies.
type TraceSink interface {
	Enabled() bool
	Trace(msg string)
}

var sink TraceSink

// SetTraceSink installs the sink used by PrintStorage, Textlike and
// Hexlike. Passing nil disables dumps. Expected to be called once
// during process start, before buffers are in flight.
func SetTraceSink(s TraceSink) { sink = s }

func traceEnabled() bool { return sink != nil && sink.Enabled() }

// PrintStorage dumps the storage as decimal byte values
func (b *ByteBuffer) PrintStorage() {
	if !traceEnabled() {
		return
	}

	var o strings.Builder
	fmt.Fprintf(&o, "STORAGE_SIZE: %d ", len(b.storage))
	for _, c := range b.storage {
		fmt.Fprintf(&o, "%d - ", c)
	}
	sink.Trace(o.String())
}

// Textlike dumps the storage as raw characters
func (b *ByteBuffer) Textlike() {
	if !traceEnabled() {
		return
	}

	var o strings.Builder
	fmt.Fprintf(&o, "STORAGE_SIZE: %d ", len(b.storage))
	for _, c := range b.storage {
		o.WriteByte(c)
	}
	sink.Trace(o.String())
}

// Hexlike dumps the storage as hex pairs, eight to a column and
// sixteen to a row
func (b *ByteBuffer) Hexlike() {
	if !traceEnabled() {
		return
	}

	var o strings.Builder
	fmt.Fprintf(&o, "STORAGE_SIZE: %d\n", len(b.storage))
	for i, c := range b.storage {
		fmt.Fprintf(&o, "%02x", c)
		switch {
		case (i+1)%16 == 0:
			o.WriteByte('\n')
		case (i+1)%8 == 0:
			o.WriteString(" | ")
		default:
			o.WriteByte(' ')
		}
	}
	sink.Trace(o.String())
}
