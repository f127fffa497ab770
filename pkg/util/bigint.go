package util

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/wirecodec/pkg/util/slice"
)

// Uint256FromBytesLE converts the first 32 bytes of b (little-endian) to a
// 256-bit number.
func Uint256FromBytesLE(b []byte) (*uint256.Int, error) {
	if len(b) < Uint256Size {
		return nil, fmt.Errorf("expected at least %d bytes, got %d", Uint256Size, len(b))
	}
	return new(uint256.Int).SetBytes(slice.CopyReverse(b[:Uint256Size])), nil
}

// Uint256FromCompact converts the compact ("nBits") representation of a
// block target to a 256-bit number. The exponent is the top byte, the
// mantissa is the lower three. The second value returned is true when the
// result doesn't fit into 256 bits (it's truncated then).
func Uint256FromCompact(c uint32) (*uint256.Int, bool) {
	var (
		nbytes   = uint(c >> 24)
		mantissa = c & 0xffffff
		v        = uint256.NewInt(uint64(mantissa))
	)
	if nbytes <= 3 {
		return v.Rsh(v, 8*(3-nbytes)), false
	}
	overflow := mantissa != 0 && (nbytes > 34 ||
		(mantissa > 0xff && nbytes > 33) ||
		(mantissa > 0xffff && nbytes > 32))
	if nbytes-3 >= 32 {
		return v.Clear(), overflow
	}
	return v.Lsh(v, 8*(nbytes-3)), overflow
}

// Uint256ShortString returns the first 16 characters of the zero-padded
// 64-character hex representation of u.
func Uint256ShortString(u *uint256.Int) string {
	b := u.Bytes32()
	return hex.EncodeToString(b[:])[:16]
}

// Uint256String returns the zero-padded 64-character hex representation
// of u.
func Uint256String(u *uint256.Int) string {
	b := u.Bytes32()
	return hex.EncodeToString(b[:])
}
