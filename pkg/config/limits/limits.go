/*
Package limits contains a number of system-wide hardcoded constants.
These are protocol-level ceilings that can't be adjusted by the
configuration, every decoder in the module relies on them to bound memory
allocated on behalf of untrusted input.
*/
package limits

const (
	// MaxReadSize is the maximum number of bytes a single bounded read can
	// request. Any length prefix asking for more is rejected before the
	// stream is touched.
	MaxReadSize = 0x02000000
	// MaxArraySize is the default maximum number of elements in a decoded
	// vector. Decoders may use a lower limit, but never a higher one.
	MaxArraySize = 0x1000000
	// MaxVarIntPayload is the maximum size of an encoded variable-length
	// integer (marker byte and 8-byte payload).
	MaxVarIntPayload = 9
)
