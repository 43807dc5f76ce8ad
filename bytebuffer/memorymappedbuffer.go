package bytebuffer

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MemoryMappedBuffer is a ByteBuffer whose storage is a memory-mapped
// packet capture file: create one to record a decoded exchange through
// positional patches, or open an existing capture to replay it through
// the usual read operations. The mapping is fixed-size, so appends that
// would grow past it are a caller defect and panic.
type MemoryMappedBuffer struct {
	*ByteBuffer
	loc  string // location of the memory mapped file
	size int    // size in bytes
	m    mmap.MMap
}

// NewMemoryMappedBuffer creates a capture file of the given size at loc
// and maps it for recording, replacing any existing file
func NewMemoryMappedBuffer(loc string, size int) (*MemoryMappedBuffer, error) {
	if _, err := os.Stat(loc); err == nil {
		if err = os.Remove(loc); err != nil {
			return nil, errors.Wrap(err, "could not replace existing capture file")
		}
	}

	f, err := os.Create(loc)
	if err != nil {
		return nil, errors.Wrap(err, "could not create capture file")
	}
	defer f.Close()

	if err = f.Truncate(int64(size)); err != nil {
		return nil, errors.Wrapf(err, "could not size capture file to %d bytes", size)
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "could not map capture file")
	}

	bb := NewByteBufferFrom(m)
	bb.fixed = true

	return &MemoryMappedBuffer{
		ByteBuffer: bb,
		loc:        loc,
		size:       size,
		m:          m,
	}, nil
}

// OpenMemoryMappedBuffer maps an existing capture file at loc for
// replay
func OpenMemoryMappedBuffer(loc string) (*MemoryMappedBuffer, error) {
	f, err := os.OpenFile(loc, os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "could not open capture file")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "could not stat capture file")
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "could not map capture file")
	}

	bb := NewByteBufferFrom(m)
	bb.fixed = true

	return &MemoryMappedBuffer{
		ByteBuffer: bb,
		loc:        loc,
		size:       int(fi.Size()),
		m:          m,
	}, nil
}

// Flush forces written contents out to the backing file
func (b *MemoryMappedBuffer) Flush() error {
	return errors.Wrap(b.m.Flush(), "could not flush capture file")
}

// Unmap removes the memory mapping, optionally deleting the backing
// file. The buffer must not be used afterwards.
func (b *MemoryMappedBuffer) Unmap(removeFile bool) error {
	if err := b.m.Unmap(); err != nil {
		return errors.Wrap(err, "could not unmap capture file")
	}

	if removeFile {
		return os.Remove(b.loc)
	}
	return nil
}
