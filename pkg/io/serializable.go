package io

import (
	"bytes"
	"fmt"

	"github.com/twmb/murmur3"
)

// Serializable defines the binary encoding/decoding interface. Errors are
// reported via the BinWriter/BinReader Err field. DecodeBinary is expected
// to be implemented on a pointer receiver, it fills the object in from the
// stream.
type Serializable interface {
	encodable
	decodable
}

type decodable interface {
	DecodeBinary(*BinReader)
}

type encodable interface {
	EncodeBinary(*BinWriter)
}

// ToByteArray serializes s into a fresh byte slice.
func ToByteArray(s encodable) ([]byte, error) {
	bw := NewBufBinWriter()
	s.EncodeBinary(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// FromByteArray deserializes s from the given data. Any data left after
// s is decoded is ignored.
func FromByteArray(s decodable, data []byte, opts ...ReaderOption) error {
	br := NewBinReaderFromBuf(data, opts...)
	s.DecodeBinary(br)
	return br.Err
}

// FromByteArrayStrict is FromByteArray that also requires the whole data
// to be consumed.
func FromByteArrayStrict(s decodable, data []byte, opts ...ReaderOption) error {
	r := bytes.NewReader(data)
	br := NewBinReaderFromIO(r, opts...)
	s.DecodeBinary(br)
	if br.Err != nil {
		return br.Err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes left", ErrTrailingData, r.Len())
	}
	return nil
}

// Deserialize creates a new T and decodes it from data. Nothing but an
// error is returned if decoding fails.
func Deserialize[T any, PT interface {
	*T
	decodable
}](data []byte, opts ...ReaderOption) (*T, error) {
	var v = new(T)
	if err := FromByteArray(PT(v), data, opts...); err != nil {
		return nil, err
	}
	return v, nil
}

// Equal checks whether a and b have identical serialized forms. Objects of
// different types can be compared too. Objects that fail to serialize are
// never equal to anything.
func Equal(a, b encodable) bool {
	ab, err := ToByteArray(a)
	if err != nil {
		return false
	}
	bb, err := ToByteArray(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Hash returns a 64-bit hash of the serialized form of s, so objects that
// are Equal have the same Hash. Objects failing to serialize hash to 0.
func Hash(s encodable) uint64 {
	b, err := ToByteArray(s)
	if err != nil {
		return 0
	}
	return murmur3.Sum64(b)
}
