package bytebuffer

import (
	"encoding/binary"
	"fmt"
	"math"
)

// wire primitives travel in the host byte order shared by both peers.
// assumes Little Endian, swap for big-endian peers
var byteOrder binary.ByteOrder = binary.LittleEndian

const (
	// defaultSize is the initial reservation of an empty buffer
	defaultSize = 0x20

	// MaxSize is the hard ceiling on a single buffer. Crossing it means
	// runaway accumulation rather than a large message and is treated
	// as a defect in the caller, not recoverable protocol input.
	MaxSize = 100000000
)

// reservation tiers, keyed to the size after the append. Packets
// cluster into a few size classes (control messages, entity updates,
// bulk state dumps), so reservations jump to the class ceiling instead
// of doubling per append.
const (
	tinyReserve   = 300
	smallReserve  = 2500
	mediumReserve = 10000
	largeReserve  = 400000
)

// ByteBuffer is a contiguous byte store with independent read and
// write cursors and a secondary bit-granularity cursor pair used while
// packing sub-byte fields
type ByteBuffer struct {
	storage []byte // len is the logical size, cap the reservation
	rpos    int
	wpos    int
	fixed   bool // storage may not be reallocated (memory mapped)

	// write-side bit cursor: wcur accumulates up to eight bits, wbits
	// counts down to the next free bit. wbits == 8 means no partial byte.
	wbits uint8
	wcur  uint8

	// read-side bit cursor: rcur holds the byte being unpacked, rbits
	// indexes the last bit returned. rbits > 7 means no byte is loaded.
	rbits uint8
	rcur  uint8
}

var _ Buffer = (*ByteBuffer)(nil)

// NewByteBuffer creates an empty ByteBuffer with the default reservation
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{
		storage: make([]byte, 0, defaultSize),
		wbits:   8,
		rbits:   8,
	}
}

// NewByteBufferCap creates an empty ByteBuffer reserving capacity bytes
// up front, for encoders that know their size class in advance
func NewByteBufferCap(capacity int) *ByteBuffer {
	return &ByteBuffer{
		storage: make([]byte, 0, capacity),
		wbits:   8,
		rbits:   8,
	}
}

// NewByteBufferFrom creates a ByteBuffer over received wire bytes for
// decoding. The buffer takes ownership of data.
func NewByteBufferFrom(data []byte) *ByteBuffer {
	return &ByteBuffer{
		storage: data,
		wpos:    len(data),
		wbits:   8,
		rbits:   8,
	}
}

// Size returns the number of bytes written so far
func (b *ByteBuffer) Size() int { return len(b.storage) }

// Cap returns the reserved capacity
func (b *ByteBuffer) Cap() int { return cap(b.storage) }

// Bytes returns the written bytes as a view into storage, valid until
// the next mutating call
func (b *ByteBuffer) Bytes() []byte { return b.storage }

// ReadPos returns the byte offset of the next sequential read
func (b *ByteBuffer) ReadPos() int { return b.rpos }

// WritePos returns the byte offset of the next append
func (b *ByteBuffer) WritePos() int { return b.wpos }

// Remaining returns the number of unread bytes
func (b *ByteBuffer) Remaining() int { return len(b.storage) - b.rpos }

// SetReadPos repositions the read cursor, discarding any partial-byte
// read state
func (b *ByteBuffer) SetReadPos(pos int) error {
	if pos < 0 || pos > len(b.storage) {
		return ErrOutOfRange
	}
	b.ResetBitPos()
	b.rpos = pos
	return nil
}

// SetWritePos repositions the write cursor within the written range,
// committing any partially packed byte first
func (b *ByteBuffer) SetWritePos(pos int) error {
	if pos < 0 || pos > len(b.storage) {
		return ErrOutOfRange
	}
	b.FlushBits()
	b.wpos = pos
	return nil
}

// Reset truncates the buffer to empty, keeping the reservation
func (b *ByteBuffer) Reset() {
	b.storage = b.storage[:0]
	b.rpos = 0
	b.wpos = 0
	b.wbits = 8
	b.wcur = 0
	b.rbits = 8
	b.rcur = 0
}

// append copies src after the write cursor, growing storage per the
// tiered reservation policy. A nil or empty source, or a target size at
// the ceiling, is a defect in the caller and panics.
func (b *ByteBuffer) append(src []byte) {
	if src == nil {
		panic(fmt.Sprintf("bytebuffer: attempted to put a nil source in ByteBuffer (pos: %d size: %d)", b.wpos, len(b.storage)))
	}
	if len(src) == 0 {
		panic(fmt.Sprintf("bytebuffer: attempted to put a zero-sized value in ByteBuffer (pos: %d size: %d)", b.wpos, len(b.storage)))
	}
	if len(b.storage)+len(src) >= MaxSize {
		panic(fmt.Sprintf("bytebuffer: buffer size would cross %d bytes (pos: %d size: %d count: %d)", MaxSize, b.wpos, len(b.storage), len(src)))
	}

	b.FlushBits()

	newSize := b.wpos + len(src)
	if cap(b.storage) < newSize {
		b.reserve(newSize)
	}
	if len(b.storage) < newSize {
		b.storage = b.storage[:newSize]
	}
	copy(b.storage[b.wpos:], src)
	b.wpos = newSize
}

// reserve reallocates storage at the tier target for newSize
func (b *ByteBuffer) reserve(newSize int) {
	if b.fixed {
		panic(fmt.Sprintf("bytebuffer: fixed-size buffer cannot grow to %d bytes (cap: %d)", newSize, cap(b.storage)))
	}

	var target int
	switch {
	case newSize < 100:
		target = tinyReserve
	case newSize < 750:
		target = smallReserve
	case newSize < 6000:
		target = mediumReserve
	default:
		target = largeReserve
	}
	if target < newSize {
		target = newSize
	}

	grown := make([]byte, len(b.storage), target)
	copy(grown, b.storage)
	b.storage = grown
}

// Write implements io.Writer by appending p. It never returns a short
// count; violated preconditions panic as with every append.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.append(p)
	return len(p), nil
}

// WriteBytes appends raw bytes
func (b *ByteBuffer) WriteBytes(src []byte) { b.append(src) }

// WriteBool appends a bool as a single byte
func (b *ByteBuffer) WriteBool(value bool) {
	if value {
		b.WriteUint8(1)
	} else {
		b.WriteUint8(0)
	}
}

// WriteUint8 appends a single byte
func (b *ByteBuffer) WriteUint8(value uint8) {
	b.append([]byte{value})
}

// WriteUint16 appends a uint16
func (b *ByteBuffer) WriteUint16(value uint16) {
	var scratch [2]byte
	byteOrder.PutUint16(scratch[:], value)
	b.append(scratch[:])
}

// WriteUint32 appends a uint32
func (b *ByteBuffer) WriteUint32(value uint32) {
	var scratch [4]byte
	byteOrder.PutUint32(scratch[:], value)
	b.append(scratch[:])
}

// WriteUint64 appends a uint64
func (b *ByteBuffer) WriteUint64(value uint64) {
	var scratch [8]byte
	byteOrder.PutUint64(scratch[:], value)
	b.append(scratch[:])
}

// WriteInt8 appends an int8
func (b *ByteBuffer) WriteInt8(value int8) { b.WriteUint8(uint8(value)) }

// WriteInt16 appends an int16
func (b *ByteBuffer) WriteInt16(value int16) { b.WriteUint16(uint16(value)) }

// WriteInt32 appends an int32
func (b *ByteBuffer) WriteInt32(value int32) { b.WriteUint32(uint32(value)) }

// WriteInt64 appends an int64
func (b *ByteBuffer) WriteInt64(value int64) { b.WriteUint64(uint64(value)) }

// WriteFloat32 appends a float32
func (b *ByteBuffer) WriteFloat32(value float32) {
	b.WriteUint32(math.Float32bits(value))
}

// WriteFloat64 appends a float64
func (b *ByteBuffer) WriteFloat64(value float64) {
	b.WriteUint64(math.Float64bits(value))
}

// read validates and consumes n bytes at the read cursor, returning
// them as a view into storage
func (b *ByteBuffer) read(n int) ([]byte, error) {
	if n < 0 {
		panic(fmt.Sprintf("bytebuffer: attempted to get a negative-sized value in ByteBuffer (pos: %d size: %d)", b.rpos, len(b.storage)))
	}
	b.ResetBitPos()
	if b.rpos+n > len(b.storage) {
		return nil, &PositionError{Pos: b.rpos, ValueSize: n, Size: len(b.storage)}
	}
	v := b.storage[b.rpos : b.rpos+n]
	b.rpos += n
	return v, nil
}

// ReadBytes consumes n bytes, returned as a view into storage that is
// valid until the next mutating call
func (b *ByteBuffer) ReadBytes(n int) ([]byte, error) {
	return b.read(n)
}

// SkipRead advances the read cursor over n bytes without decoding them
func (b *ByteBuffer) SkipRead(n int) error {
	_, err := b.read(n)
	return err
}

// ReadBool consumes one byte, reporting whether it is non-zero
func (b *ByteBuffer) ReadBool() (bool, error) {
	v, err := b.ReadUint8()
	return v != 0, err
}

// ReadUint8 consumes a single byte
func (b *ByteBuffer) ReadUint8() (uint8, error) {
	v, err := b.read(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// ReadUint16 consumes a uint16
func (b *ByteBuffer) ReadUint16() (uint16, error) {
	v, err := b.read(2)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint16(v), nil
}

// ReadUint32 consumes a uint32
func (b *ByteBuffer) ReadUint32() (uint32, error) {
	v, err := b.read(4)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint32(v), nil
}

// ReadUint64 consumes a uint64
func (b *ByteBuffer) ReadUint64() (uint64, error) {
	v, err := b.read(8)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint64(v), nil
}

// ReadInt8 consumes an int8
func (b *ByteBuffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

// ReadInt16 consumes an int16
func (b *ByteBuffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt32 consumes an int32
func (b *ByteBuffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadInt64 consumes an int64
func (b *ByteBuffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// ReadFloat32 consumes a float32, rejecting non-finite values so that
// corrupted or hostile payloads cannot leak NaN or infinity into
// downstream arithmetic
func (b *ByteBuffer) ReadFloat32() (float32, error) {
	bits, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	value := math.Float32frombits(bits)
	if f := float64(value); math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &InvalidValueError{Kind: "float", Value: "infinity"}
	}
	return value, nil
}

// ReadFloat64 consumes a float64, rejecting non-finite values
func (b *ByteBuffer) ReadFloat64() (float64, error) {
	bits, err := b.ReadUint64()
	if err != nil {
		return 0, err
	}
	value := math.Float64frombits(bits)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, &InvalidValueError{Kind: "double", Value: "infinity"}
	}
	return value, nil
}

// PutBytes overwrites already written bytes at pos without moving
// either cursor. Used to back-patch count and size fields once the
// content they describe has been appended. The target range must lie
// within the written bytes; a caller computing offsets past the end is
// defective and panics.
func (b *ByteBuffer) PutBytes(pos int, src []byte) {
	if src == nil {
		panic(fmt.Sprintf("bytebuffer: attempted to put a nil source in ByteBuffer (pos: %d size: %d)", pos, len(b.storage)))
	}
	if len(src) == 0 {
		panic(fmt.Sprintf("bytebuffer: attempted to put a zero-sized value in ByteBuffer (pos: %d size: %d)", pos, len(b.storage)))
	}
	if pos < 0 || pos+len(src) > len(b.storage) {
		panic(fmt.Sprintf("bytebuffer: attempted to put value with size: %d in ByteBuffer (pos: %d size: %d)", len(src), pos, len(b.storage)))
	}
	copy(b.storage[pos:], src)
}

// PutUint8 back-patches a single byte at pos
func (b *ByteBuffer) PutUint8(pos int, value uint8) {
	b.PutBytes(pos, []byte{value})
}

// PutUint16 back-patches a uint16 at pos
func (b *ByteBuffer) PutUint16(pos int, value uint16) {
	var scratch [2]byte
	byteOrder.PutUint16(scratch[:], value)
	b.PutBytes(pos, scratch[:])
}

// PutUint32 back-patches a uint32 at pos
func (b *ByteBuffer) PutUint32(pos int, value uint32) {
	var scratch [4]byte
	byteOrder.PutUint32(scratch[:], value)
	b.PutBytes(pos, scratch[:])
}

// PutUint64 back-patches a uint64 at pos
func (b *ByteBuffer) PutUint64(pos int, value uint64) {
	var scratch [8]byte
	byteOrder.PutUint64(scratch[:], value)
	b.PutBytes(pos, scratch[:])
}
