package bytebuffer

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Text travels either NUL-terminated or with an out-of-band length
// field supplied by the caller. Strings are always byte aligned, so
// both readers realign the bit cursor before touching storage. Decoded
// values are expected to be valid UTF-8 unless the caller opts out.

// WriteString appends the raw bytes of s with no terminator, for the
// length-prefixed encoding where the caller writes the length itself.
// An empty string appends nothing.
func (b *ByteBuffer) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.append([]byte(s))
}

// WriteCString appends s followed by a NUL terminator
func (b *ByteBuffer) WriteCString(s string) {
	terminated := make([]byte, len(s)+1)
	copy(terminated, s)
	b.append(terminated)
}

// ReadCString scans forward for a NUL terminator and returns the bytes
// before it as a view into storage, consuming the terminator. A
// missing terminator means the string claims to extend past the
// available data and yields a PositionError anchored at the buffer
// end. The view is valid until the next mutating call.
func (b *ByteBuffer) ReadCString(requireValidUTF8 bool) ([]byte, error) {
	if b.rpos >= len(b.storage) {
		return nil, &PositionError{Pos: b.rpos, ValueSize: 1, Size: len(b.storage)}
	}

	b.ResetBitPos()

	i := bytes.IndexByte(b.storage[b.rpos:], 0)
	if i < 0 {
		return nil, &PositionError{Pos: len(b.storage), ValueSize: 1, Size: len(b.storage)}
	}

	value := b.storage[b.rpos : b.rpos+i]
	b.rpos += i + 1
	if requireValidUTF8 && !utf8.Valid(value) {
		return nil, &InvalidValueError{Kind: "string", Value: string(value)}
	}
	return value, nil
}

// ReadString returns exactly length bytes as a view into storage, for
// the encoding whose length was read out-of-band by the caller. The
// view is valid until the next mutating call.
func (b *ByteBuffer) ReadString(length int, requireValidUTF8 bool) ([]byte, error) {
	if length < 0 {
		panic(fmt.Sprintf("bytebuffer: attempted to get a negative-sized value in ByteBuffer (pos: %d size: %d)", b.rpos, len(b.storage)))
	}
	if b.rpos+length > len(b.storage) {
		return nil, &PositionError{Pos: b.rpos, ValueSize: length, Size: len(b.storage)}
	}

	b.ResetBitPos()
	if length == 0 {
		return []byte{}, nil
	}

	value := b.storage[b.rpos : b.rpos+length]
	b.rpos += length
	if requireValidUTF8 && !utf8.Valid(value) {
		return nil, &InvalidValueError{Kind: "string", Value: string(value)}
	}
	return value, nil
}
