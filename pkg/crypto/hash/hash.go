/*
Package hash contains the hash functions used by the wire protocol: SHA256,
double SHA256 for block and transaction identifiers, RIPEMD160(SHA256) for
public key and script digests.
*/
package hash

import (
	"crypto/sha256"

	"github.com/nspcc-dev/wirecodec/pkg/io"
	"github.com/nspcc-dev/wirecodec/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD160 is a part of the protocol.
)

// Sha256 hashes the incoming byte slice
// using the sha256 algorithm.
func Sha256(data []byte) util.Uint256 {
	return sha256.Sum256(data)
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) util.Uint256 {
	h1 := Sha256(data)
	return Sha256(h1[:])
}

// RipeMD160 performs the RIPEMD160 hash algorithm
// on the given data.
func RipeMD160(data []byte) util.Uint160 {
	var hash util.Uint160
	hasher := ripemd160.New()
	_, _ = hasher.Write(data)

	hasher.Sum(hash[:0])
	return hash
}

// Hash160 performs sha256 and then ripemd160
// on the given data.
func Hash160(data []byte) util.Uint160 {
	h1 := Sha256(data)
	return RipeMD160(h1[:])
}

// Checksum returns the checksum for a given piece of data
// using sha256 twice as the hash algorithm.
func Checksum(data []byte) []byte {
	hash := DoubleSha256(data)
	return hash[:4]
}

// Serializable returns double SHA256 of the serialized s, the way object
// identifiers are calculated.
func Serializable(s io.Serializable) (util.Uint256, error) {
	data, err := io.ToByteArray(s)
	if err != nil {
		return util.Uint256{}, err
	}
	return DoubleSha256(data), nil
}
