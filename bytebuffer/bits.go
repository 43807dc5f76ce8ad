package bytebuffer

import "fmt"

// Sub-byte fields are packed MSB-first: bit i of a field's range maps
// to byte (pos+i)/8, intra-byte bit 7-((pos+i)%8). Producers write a
// run of bit fields, then FlushBits before the next byte-aligned field;
// consumers mirror that with ReadBit/ReadBits and ResetBitPos. Every
// byte-level operation performs the flush/reset itself, so forgetting
// one cannot corrupt the buffer.

// WriteBit packs a single bit into the pending byte, appending it to
// storage once all eight bits are filled
func (b *ByteBuffer) WriteBit(bit bool) {
	b.wbits--
	if bit {
		b.wcur |= 1 << b.wbits
	}
	if b.wbits == 0 {
		// reset before appending so the flush inside append no-ops
		cur := b.wcur
		b.wbits = 8
		b.wcur = 0
		b.append([]byte{cur})
	}
}

// WriteBits packs the low count bits of value, most significant bit
// first. count must be in [1,64].
func (b *ByteBuffer) WriteBits(value uint64, count uint32) {
	if count == 0 || count > 64 {
		panic(fmt.Sprintf("bytebuffer: attempted to write %d bits in ByteBuffer", count))
	}
	for i := count; i > 0; i-- {
		b.WriteBit((value>>(i-1))&1 == 1)
	}
}

// FlushBits commits a partially packed byte, rounding the bit write
// cursor up to the byte boundary so subsequent byte-level appends do
// not overwrite it
func (b *ByteBuffer) FlushBits() {
	if b.wbits == 8 {
		return
	}
	cur := b.wcur
	b.wbits = 8
	b.wcur = 0
	b.append([]byte{cur})
}

// ResetBitPos realigns the bit read cursor to the byte read cursor,
// discarding any partially unpacked byte
func (b *ByteBuffer) ResetBitPos() {
	if b.rbits > 7 {
		return
	}
	b.rbits = 8
	b.rcur = 0
}

// ReadBit unpacks the next bit, loading the next storage byte when the
// current one is exhausted
func (b *ByteBuffer) ReadBit() (bool, error) {
	b.rbits++
	if b.rbits > 7 {
		if b.rpos+1 > len(b.storage) {
			b.rbits = 8
			return false, &PositionError{Pos: b.rpos, ValueSize: 1, Size: len(b.storage)}
		}
		b.rcur = b.storage[b.rpos]
		b.rpos++
		b.rbits = 0
	}
	return (b.rcur>>(7-b.rbits))&1 == 1, nil
}

// ReadBits unpacks count bits, most significant bit first. count must
// be in [1,64].
func (b *ByteBuffer) ReadBits(count uint32) (uint64, error) {
	if count == 0 || count > 64 {
		panic(fmt.Sprintf("bytebuffer: attempted to read %d bits in ByteBuffer", count))
	}
	var value uint64
	for i := count; i > 0; i-- {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			value |= 1 << (i - 1)
		}
	}
	return value, nil
}

// BitWritePos returns the absolute bit offset the next WriteBit lands
// on, recorded by callers that back-patch a bit run via PutBits after
// its final value is known
func (b *ByteBuffer) BitWritePos() int {
	return b.wpos*8 + 8 - int(b.wbits)
}

// PutBits overwrites the bit range [pos, pos+count) with the low count
// bits of value, most significant bit first. The bytes holding the
// range must already be written; an out-of-range target can only come
// from a miscomputed offset and panics.
func (b *ByteBuffer) PutBits(pos int, value uint64, count uint32) {
	if count == 0 {
		panic("bytebuffer: attempted to put zero bits in ByteBuffer")
	}
	if pos < 0 || pos+int(count) > len(b.storage)*8 {
		panic(fmt.Sprintf("bytebuffer: attempted to put %d bits in ByteBuffer (bitpos: %d size: %d)", count, pos, len(b.storage)))
	}

	for i := uint32(0); i < count; i++ {
		wp := (pos + int(i)) / 8
		bit := uint(pos+int(i)) % 8
		if (value>>(count-i-1))&1 == 1 {
			b.storage[wp] |= 1 << (7 - bit)
		} else {
			b.storage[wp] &^= 1 << (7 - bit)
		}
	}
}
