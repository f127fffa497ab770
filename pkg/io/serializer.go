package io

import (
	"fmt"
)

// Serializer is a stateless codec for values of type T that don't implement
// Serializable themselves (integers, byte slices, vectors).
type Serializer[T any] interface {
	EncodeBinary(*BinWriter, T)
	DecodeBinary(*BinReader) T
}

// Serialize encodes v with s into a fresh byte slice.
func Serialize[T any](s Serializer[T], v T) ([]byte, error) {
	bw := NewBufBinWriter()
	s.EncodeBinary(bw.BinWriter, v)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// DeserializeWith decodes a value from data using s. A zero T is returned
// along with any error.
func DeserializeWith[T any](s Serializer[T], data []byte, opts ...ReaderOption) (T, error) {
	var zero T

	br := NewBinReaderFromBuf(data, opts...)
	v := s.DecodeBinary(br)
	if br.Err != nil {
		return zero, br.Err
	}
	return v, nil
}

// SerializerFunc makes a Serializer out of a pair of functions, a missing
// one fails with ErrNotImplemented.
type SerializerFunc[T any] struct {
	Encode func(*BinWriter, T)
	Decode func(*BinReader) T
}

// EncodeBinary implements Serializer.
func (f SerializerFunc[T]) EncodeBinary(w *BinWriter, v T) {
	if f.Encode == nil {
		w.SetError(fmt.Errorf("%w: encoder for %T", ErrNotImplemented, v))
		return
	}
	f.Encode(w, v)
}

// DecodeBinary implements Serializer.
func (f SerializerFunc[T]) DecodeBinary(r *BinReader) T {
	var v T
	if f.Decode == nil {
		r.SetError(fmt.Errorf("%w: decoder for %T", ErrNotImplemented, v))
		return v
	}
	return f.Decode(r)
}

// VarIntSerializer handles variable-length integers.
type VarIntSerializer struct{}

// EncodeBinary implements Serializer.
func (VarIntSerializer) EncodeBinary(w *BinWriter, i uint64) { w.WriteVarUint(i) }

// DecodeBinary implements Serializer.
func (VarIntSerializer) DecodeBinary(r *BinReader) uint64 { return r.ReadVarUint() }

// BytesSerializer handles varint length-prefixed byte slices.
type BytesSerializer struct{}

// EncodeBinary implements Serializer.
func (BytesSerializer) EncodeBinary(w *BinWriter, b []byte) { w.WriteVarBytes(b) }

// DecodeBinary implements Serializer.
func (BytesSerializer) DecodeBinary(r *BinReader) []byte { return r.ReadVarBytes() }

// VarStringSerializer handles varint length-prefixed strings.
type VarStringSerializer struct{}

// EncodeBinary implements Serializer.
func (VarStringSerializer) EncodeBinary(w *BinWriter, s string) { w.WriteString(s) }

// DecodeBinary implements Serializer.
func (VarStringSerializer) DecodeBinary(r *BinReader) string { return r.ReadString() }

// Uint256VectorSerializer handles vectors of 32-byte values.
type Uint256VectorSerializer struct{}

// EncodeBinary implements Serializer.
func (Uint256VectorSerializer) EncodeBinary(w *BinWriter, v [][]byte) { w.WriteUint256Vector(v) }

// DecodeBinary implements Serializer.
func (Uint256VectorSerializer) DecodeBinary(r *BinReader) [][]byte { return r.ReadUint256Vector() }

// Int32VectorSerializer handles vectors of little-endian int32 values.
type Int32VectorSerializer struct{}

// EncodeBinary implements Serializer.
func (Int32VectorSerializer) EncodeBinary(w *BinWriter, v []int32) { w.WriteInt32Vector(v) }

// DecodeBinary implements Serializer.
func (Int32VectorSerializer) DecodeBinary(r *BinReader) []int32 { return r.ReadInt32Vector() }

// VectorSerializer handles vectors of arbitrary elements using Elem for
// each of them. MaxSize limits the number of elements decoded, zero means
// the default limit.
type VectorSerializer[T any] struct {
	Elem    Serializer[T]
	MaxSize int
}

// EncodeBinary implements Serializer.
func (s VectorSerializer[T]) EncodeBinary(w *BinWriter, v []T) {
	WriteArrayWith(w, v, s.Elem.EncodeBinary)
}

// DecodeBinary implements Serializer.
func (s VectorSerializer[T]) DecodeBinary(r *BinReader) []T {
	if s.MaxSize != 0 {
		return ReadArrayWith(r, s.Elem.DecodeBinary, s.MaxSize)
	}
	return ReadArrayWith(r, s.Elem.DecodeBinary)
}

// ObjectSerializer adapts a Serializable type to the Serializer interface,
// so that it can be used as a VectorSerializer element.
type ObjectSerializer[T any, PT interface {
	*T
	Serializable
}] struct{}

// EncodeBinary implements Serializer.
func (ObjectSerializer[T, PT]) EncodeBinary(w *BinWriter, v T) {
	PT(&v).EncodeBinary(w)
}

// DecodeBinary implements Serializer.
func (ObjectSerializer[T, PT]) DecodeBinary(r *BinReader) T {
	var v T
	PT(&v).DecodeBinary(r)
	return v
}
