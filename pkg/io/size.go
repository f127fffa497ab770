package io

// counter is an io.Writer that only counts the bytes written.
type counter int

func (c *counter) Write(p []byte) (int, error) {
	*c += counter(len(p))
	return len(p), nil
}

// GetVarIntSize returns the size in number of bytes of a variable integer.
func GetVarIntSize(value uint64) int {
	switch {
	case value < 0xfd:
		return 1 // uint8
	case value <= 0xFFFF:
		return 3 // byte + uint16
	case value <= 0xFFFFFFFF:
		return 5 // byte + uint32
	default:
		return 9 // byte + uint64
	}
}

// GetVarBytesSize returns the size of a length-prefixed byte slice.
func GetVarBytesSize(b []byte) int {
	return GetVarIntSize(uint64(len(b))) + len(b)
}

// GetVarStringSize returns the size of a variable string.
func GetVarStringSize(value string) int {
	return GetVarIntSize(uint64(len(value))) + len(value)
}

// GetSize returns the size of the serialized s without allocating a buffer
// for it. Serialization errors are returned as is.
func GetSize(s encodable) (int, error) {
	var c counter
	w := NewBinWriterFromIO(&c)
	s.EncodeBinary(w)
	if w.Err != nil {
		return 0, w.Err
	}
	return int(c), nil
}
