package config

import (
	"fmt"

	"github.com/nspcc-dev/wirecodec/pkg/config/limits"
	"github.com/nspcc-dev/wirecodec/pkg/io"
)

// DecoderConfiguration controls how untrusted data is decoded.
type DecoderConfiguration struct {
	// StrictVarInt makes decoders reject varints that don't use the
	// smallest possible encoding.
	StrictVarInt bool `yaml:"StrictVarInt"`
	// MaxArraySize is the maximum number of elements in a decoded vector,
	// it can't exceed limits.MaxArraySize.
	MaxArraySize int `yaml:"MaxArraySize"`
}

// Validate checks the configuration for consistency.
func (d DecoderConfiguration) Validate() error {
	if d.MaxArraySize <= 0 || d.MaxArraySize > limits.MaxArraySize {
		return fmt.Errorf("invalid MaxArraySize %d: should be in (0, %d]", d.MaxArraySize, limits.MaxArraySize)
	}
	return nil
}

// ReaderOptions returns io.BinReader options matching the configuration.
func (d DecoderConfiguration) ReaderOptions() []io.ReaderOption {
	var opts []io.ReaderOption
	if d.StrictVarInt {
		opts = append(opts, io.StrictVarInt())
	}
	return opts
}
