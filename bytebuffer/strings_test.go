package bytebuffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadCString(t *testing.T) {
	b := NewByteBufferFrom([]byte("abc\x00def"))

	v, err := b.ReadCString(true)
	if err != nil {
		t.Error(err)
		return
	}
	if !bytes.Equal(v, []byte("abc")) {
		t.Errorf("expected abc, got %q", v)
	}
	if b.ReadPos() != 4 {
		t.Errorf("expected read cursor past the terminator at 4, got %v", b.ReadPos())
	}
}

func TestReadCStringUnterminated(t *testing.T) {
	b := NewByteBufferFrom([]byte("abcdef"))

	_, err := b.ReadCString(true)
	var perr *PositionError
	if !errors.As(err, &perr) {
		t.Errorf("expected a PositionError, got %v", err)
		return
	}
	if perr.Pos != 6 || perr.Size != 6 {
		t.Errorf("expected error anchored at the buffer end, got %+v", perr)
	}
}

func TestReadCStringExhausted(t *testing.T) {
	b := NewByteBufferFrom([]byte("a\x00"))

	if _, err := b.ReadCString(true); err != nil {
		t.Error(err)
	}

	var perr *PositionError
	if _, err := b.ReadCString(true); !errors.As(err, &perr) {
		t.Errorf("expected a PositionError on an exhausted buffer, got %v", err)
	}
}

func TestReadCStringValidation(t *testing.T) {
	raw := []byte{0xC3, 0x28, 0x00} // invalid 2-byte sequence

	b := NewByteBufferFrom(raw)
	_, err := b.ReadCString(true)
	var verr *InvalidValueError
	if !errors.As(err, &verr) {
		t.Errorf("expected an InvalidValueError, got %v", err)
	} else if verr.Kind != "string" {
		t.Errorf("expected kind string, got %v", verr.Kind)
	}

	// skipping validation returns the raw bytes unchanged
	b = NewByteBufferFrom(raw)
	v, err := b.ReadCString(false)
	if err != nil {
		t.Error(err)
		return
	}
	if !bytes.Equal(v, raw[:2]) {
		t.Errorf("expected raw bytes back, got %v", v)
	}
}

func TestReadString(t *testing.T) {
	b := NewByteBuffer()
	b.WriteUint8(uint8(len("héllo")))
	b.WriteString("héllo")

	n, err := b.ReadUint8()
	if err != nil {
		t.Error(err)
		return
	}
	v, err := b.ReadString(int(n), true)
	if err != nil {
		t.Error(err)
		return
	}
	if string(v) != "héllo" {
		t.Errorf("expected héllo, got %q", v)
	}
	if b.Remaining() != 0 {
		t.Errorf("expected no bytes remaining, got %v", b.Remaining())
	}
}

func TestReadStringZeroLength(t *testing.T) {
	b := NewByteBufferFrom([]byte{1, 2})

	v, err := b.ReadString(0, true)
	if err != nil {
		t.Error(err)
	}
	if len(v) != 0 {
		t.Errorf("expected an empty view, got %v", v)
	}
	if b.ReadPos() != 0 {
		t.Error("zero-length read moved the cursor")
	}
}

func TestReadStringPastEnd(t *testing.T) {
	b := NewByteBufferFrom([]byte("abc"))

	_, err := b.ReadString(4, true)
	var perr *PositionError
	if !errors.As(err, &perr) {
		t.Errorf("expected a PositionError, got %v", err)
		return
	}
	if perr.Pos != 0 || perr.ValueSize != 4 || perr.Size != 3 {
		t.Errorf("wrong error context: %+v", perr)
	}
}

func TestReadStringTruncatedUTF8(t *testing.T) {
	raw := []byte{'a', 0xE2, 0x82} // truncated 3-byte sequence

	b := NewByteBufferFrom(raw)
	_, err := b.ReadString(3, true)
	var verr *InvalidValueError
	if !errors.As(err, &verr) {
		t.Errorf("expected an InvalidValueError, got %v", err)
	} else if verr.Kind != "string" {
		t.Errorf("expected kind string, got %v", verr.Kind)
	}

	b = NewByteBufferFrom(raw)
	v, err := b.ReadString(3, false)
	if err != nil {
		t.Error(err)
		return
	}
	if !bytes.Equal(v, raw) {
		t.Errorf("expected raw bytes back, got %v", v)
	}
}

func TestWriteCStringEmpty(t *testing.T) {
	b := NewByteBuffer()
	b.WriteCString("")

	if !bytes.Equal(b.Bytes(), []byte{0}) {
		t.Errorf("expected a lone terminator, got %v", b.Bytes())
	}

	v, err := b.ReadCString(true)
	if err != nil {
		t.Error(err)
	}
	if len(v) != 0 {
		t.Errorf("expected an empty string, got %q", v)
	}
}
