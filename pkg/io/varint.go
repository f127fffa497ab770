package io

import (
	"bytes"
	"fmt"

	"github.com/nspcc-dev/wirecodec/pkg/config/limits"
)

// EncodeVarInt returns the canonical variable-length encoding of i.
// Negative values can't be encoded and fail with ErrInvalidArgument.
func EncodeVarInt(i int64) ([]byte, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: varint must be non-negative, got %d", ErrInvalidArgument, i)
	}
	buf := make([]byte, limits.MaxVarIntPayload)
	n := PutVarUint(buf, uint64(i))
	return buf[:n], nil
}

// DecodeVarInt decodes a single varint from the beginning of data and
// returns it along with the number of bytes consumed.
func DecodeVarInt(data []byte, opts ...ReaderOption) (uint64, int, error) {
	buf := bytes.NewReader(data)
	r := NewBinReaderFromIO(buf, opts...)
	v := r.ReadVarUint()
	if r.Err != nil {
		return 0, 0, r.Err
	}
	return v, len(data) - buf.Len(), nil
}
