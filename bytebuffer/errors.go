package bytebuffer

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a cursor is repositioned outside the
// written range
var ErrOutOfRange = errors.New("bytebuffer: position out of range")

// PositionError reports a read, string scan or bit read that would run
// past the bytes currently available. It signals a truncated or
// corrupted message and the caller is expected to abort decoding.
type PositionError struct {
	Pos       int // attempted position
	ValueSize int // requested value size in bytes
	Size      int // buffer size at the time of the access
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("attempted to get value with size: %d in ByteBuffer (pos: %d size: %d)", e.ValueSize, e.Pos, e.Size)
}

// InvalidValueError reports bytes that were present but decoded to a
// value outside its domain: a non-finite float, invalid UTF-8 text.
// Distinguished from PositionError so malformed content can be told
// apart from truncated content in diagnostics.
type InvalidValueError struct {
	Kind  string // "float", "double" or "string"
	Value string // rendering of the offending value
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value (%s) found in ByteBuffer", e.Kind, e.Value)
}
