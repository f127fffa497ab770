/*
Package testserdes contains helpers checking that values survive a trip
through their binary or JSON representation unchanged.
*/
package testserdes

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/wirecodec/pkg/io"
	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeDecodeBinary checks if expected stays the same after
// serializing/deserializing via io.Serializable methods. It also checks
// that the serialized form is stable and that both values are io.Equal.
func EncodeDecodeBinary(t *testing.T, expected, actual io.Serializable) {
	data, err := EncodeBinary(expected)
	require.NoError(t, err)
	require.NoError(t, DecodeBinary(data, actual))
	require.Equal(t, expected, actual)

	again, err := EncodeBinary(actual)
	require.NoError(t, err)
	require.Equal(t, data, again)
	require.True(t, io.Equal(expected, actual))
	require.Equal(t, io.Hash(expected), io.Hash(actual))
}

// EncodeBinary serializes a to a byte slice.
func EncodeBinary(a io.Serializable) ([]byte, error) {
	return io.ToByteArray(a)
}

// DecodeBinary deserializes a from a byte slice requiring all of the data
// to be used.
func DecodeBinary(data []byte, a io.Serializable) error {
	return io.FromByteArrayStrict(a, data)
}

// EncodeDecode checks if expected stays the same after a trip through
// the given io.Serializer.
func EncodeDecode[T any](t *testing.T, s io.Serializer[T], expected T) {
	data, err := io.Serialize(s, expected)
	require.NoError(t, err)
	actual, err := io.DeserializeWith(s, data)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}
