// Package bytebuffer implements the growable packet buffer underlying
// the wire protocol
//
// initially tried to use bytes.Buffer but the main restriction with
// that is that it couples reading and writing into a single stream: it
// cannot back-patch a length field once later content has been
// appended, and it has no place to hang a bit-granularity cursor off of
//
// another attempt was to thread an explicit position through free
// functions that each returned the next writable location, which
// resulted in calls like
//
//	pos = writeUint32(storage, pos, count)
//
// which became unmaintainable once bit-packed fields entered the
// picture
//
// this keeps one owned storage slice with independent read and write
// cursors, typed primitive codecs, string codecs with optional UTF-8
// validation and an MSB-first bit-packing layer that is reconciled
// with the byte cursors before every byte-level operation
//
// a ByteBuffer is built by one producer and consumed by one reader; it
// is not internally synchronized
package bytebuffer

import "io"

// Buffer defines the writer surface handed to packet encoders:
// sequential typed appends plus positional back-patching for fields
// whose values are only known after later content has been written
type Buffer interface {
	io.Writer
	Bytes() []byte
	Size() int
	Cap() int
	WriteBool(bool)
	WriteUint8(uint8)
	WriteUint16(uint16)
	WriteUint32(uint32)
	WriteUint64(uint64)
	WriteInt8(int8)
	WriteInt16(int16)
	WriteInt32(int32)
	WriteInt64(int64)
	WriteFloat32(float32)
	WriteFloat64(float64)
	WriteString(string)
	WriteCString(string)
	PutBytes(int, []byte)
}
