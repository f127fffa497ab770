package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/nspcc-dev/wirecodec/pkg/config/limits"
)

// readChunkSize is the largest read that gets its buffer allocated upfront.
// Longer reads grow the buffer as the data arrives, so a hostile length
// prefix can't make us allocate more than the stream actually holds.
const readChunkSize = 1 << 16

// BinReader is a convenient wrapper around a io.Reader and err object.
// Used to simplify error handling when reading into a struct with many fields.
// The first error encountered is kept in Err and all subsequent reads are
// no-ops returning zero values.
type BinReader struct {
	r      io.Reader
	Err    error
	strict bool
	u      [8]byte
}

// ReaderOption changes BinReader behaviour.
type ReaderOption func(*BinReader)

// StrictVarInt makes the reader reject varints that are not encoded using
// the smallest possible tier.
func StrictVarInt() ReaderOption {
	return func(r *BinReader) {
		r.strict = true
	}
}

// NewBinReaderFromIO makes a BinReader from io.Reader.
func NewBinReaderFromIO(ior io.Reader, opts ...ReaderOption) *BinReader {
	r := &BinReader{r: ior}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte, opts ...ReaderOption) *BinReader {
	return NewBinReaderFromIO(bytes.NewReader(b), opts...)
}

// SetStrict toggles canonical varint checking.
func (r *BinReader) SetStrict(strict bool) {
	r.strict = strict
}

// SetError sets the reader error if there is none yet. It's useful for
// DecodeBinary implementations that check decoded values.
func (r *BinReader) SetError(err error) {
	if r.Err == nil {
		r.Err = err
	}
}

// ReadExact reads exactly n bytes from the underlying reader. Requests
// above limits.MaxReadSize fail with ErrOversizeRead without any read,
// short reads fail with TruncatedError.
func (r *BinReader) ReadExact(n int) []byte {
	if r.Err != nil {
		return nil
	}
	if n < 0 {
		r.Err = fmt.Errorf("%w: negative read size %d", ErrInvalidArgument, n)
		return nil
	}
	if n > limits.MaxReadSize {
		r.Err = fmt.Errorf("%w: asked to read 0x%x bytes", ErrOversizeRead, n)
		return nil
	}
	if n <= readChunkSize {
		b := make([]byte, n)
		r.ReadBytes(b)
		if r.Err != nil {
			return nil
		}
		return b
	}

	var buf bytes.Buffer
	buf.Grow(readChunkSize)
	got, err := io.CopyN(&buf, r.r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.Err = &TruncatedError{Requested: n, Actual: int(got)}
		} else {
			r.Err = err
		}
		return nil
	}
	return buf.Bytes()
}

// ReadBytes fills the given buffer from the underlying reader.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	n, err := io.ReadFull(r.r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.Err = &TruncatedError{Requested: len(buf), Actual: n}
		} else {
			r.Err = err
		}
	}
}

// ReadB reads a byte from the underlying reader.
func (r *BinReader) ReadB() byte {
	r.ReadBytes(r.u[:1])
	if r.Err != nil {
		return 0
	}
	return r.u[0]
}

// ReadBool reads a boolean value encoded in a zero/non-zero byte.
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadU16LE reads a little-endian encoded uint16 value.
func (r *BinReader) ReadU16LE() uint16 {
	r.ReadBytes(r.u[:2])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(r.u[:2])
}

// ReadU32LE reads a little-endian encoded uint32 value.
func (r *BinReader) ReadU32LE() uint32 {
	r.ReadBytes(r.u[:4])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(r.u[:4])
}

// ReadI32LE reads a little-endian encoded int32 value.
func (r *BinReader) ReadI32LE() int32 {
	return int32(r.ReadU32LE())
}

// ReadU64LE reads a little-endian encoded uint64 value.
func (r *BinReader) ReadU64LE() uint64 {
	r.ReadBytes(r.u[:8])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(r.u[:8])
}

// ReadVarUint reads a variable-length-encoded integer from the
// underlying reader. Any tier able to hold the value is accepted unless
// the reader is strict.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}

	var (
		b        = r.ReadB()
		v, lower uint64
	)
	switch b {
	case 0xfd:
		v, lower = uint64(r.ReadU16LE()), 0xfd
	case 0xfe:
		v, lower = uint64(r.ReadU32LE()), 0x10000
	case 0xff:
		v, lower = r.ReadU64LE(), 0x100000000
	default:
		return uint64(b)
	}
	if r.Err != nil {
		return 0
	}
	if r.strict && v < lower {
		r.Err = fmt.Errorf("%w: 0x%x encoded with marker 0x%x", ErrNonCanonical, v, b)
		return 0
	}
	return v
}

// ReadVarBytes reads a varint length-prefixed byte slice. An optional
// maxSize limits the length further than limits.MaxReadSize.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	n := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if n > limits.MaxReadSize {
		r.Err = fmt.Errorf("%w: asked to read 0x%x bytes", ErrOversizeRead, n)
		return nil
	}
	if len(maxSize) != 0 && n > uint64(maxSize[0]) {
		r.Err = fmt.Errorf("%w: byte-slice of %d bytes", ErrTooLarge, n)
		return nil
	}
	return r.ReadExact(int(n))
}

// ReadString calls ReadVarBytes and casts the results as a string. No
// character encoding validation is performed.
func (r *BinReader) ReadString(maxSize ...int) string {
	return string(r.ReadVarBytes(maxSize...))
}

// ReadUint256Vector reads a vector of 32-byte values.
func (r *BinReader) ReadUint256Vector(maxSize ...int) [][]byte {
	return ReadArrayWith(r, func(r *BinReader) []byte {
		return r.ReadExact(32)
	}, maxSize...)
}

// ReadInt32Vector reads a vector of little-endian int32 values.
func (r *BinReader) ReadInt32Vector(maxSize ...int) []int32 {
	return ReadArrayWith(r, (*BinReader).ReadI32LE, maxSize...)
}

// readCount reads a vector element count and checks it against the limit.
func (r *BinReader) readCount(maxSize []int) int {
	ms := limits.MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}

	n := r.ReadVarUint()
	if r.Err != nil {
		return 0
	}
	if n > uint64(ms) {
		r.Err = fmt.Errorf("%w: array of %d elements", ErrTooLarge, n)
		return 0
	}
	return int(n)
}

// ReadArrayWith reads a varint-prefixed vector decoding every element with
// dec. Any element failure discards the whole vector. The number of
// elements is limited by limits.MaxArraySize or by the given maxSize.
func ReadArrayWith[T any](r *BinReader, dec func(*BinReader) T, maxSize ...int) []T {
	n := r.readCount(maxSize)
	if r.Err != nil {
		return nil
	}

	// Count is untrusted, grow from a bounded capacity.
	arr := make([]T, 0, min(n, readChunkSize))
	for i := 0; i < n; i++ {
		el := dec(r)
		if r.Err != nil {
			return nil
		}
		arr = append(arr, el)
	}
	return arr
}

// ReadArray reads a vector of elements that know how to decode themselves.
func ReadArray[T any, PT interface {
	*T
	decodable
}](r *BinReader, maxSize ...int) []T {
	return ReadArrayWith(r, func(r *BinReader) T {
		var el T
		PT(&el).DecodeBinary(r)
		return el
	}, maxSize...)
}
