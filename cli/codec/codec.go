/*
Package codec implements CLI commands encoding and decoding wire format
primitives.
*/
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/nspcc-dev/wirecodec/cli/options"
	"github.com/nspcc-dev/wirecodec/pkg/config"
	"github.com/nspcc-dev/wirecodec/pkg/crypto/hash"
	"github.com/nspcc-dev/wirecodec/pkg/io"
	"github.com/nspcc-dev/wirecodec/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	kindUint256 = "uint256"
	kindInt32   = "int32"
)

var errNoArgument = errors.New("no argument given")

var kindFlag = cli.StringFlag{
	Name:  "kind, k",
	Value: kindUint256,
	Usage: "element kind: uint256 or int32",
}

// env is what every command needs to do its job.
type env struct {
	ctx *cli.Context
	cfg config.Config
	log *zap.Logger
}

func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return nil, err
	}
	return &env{ctx: ctx, cfg: cfg, log: log}, nil
}

// withEnv wraps a command action providing it with configuration and logger,
// all errors are converted into exit errors.
func withEnv(f func(e *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := newEnv(ctx)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer func() { _ = e.log.Sync() }()

		if err = f(e); err != nil {
			e.log.Debug("command failed", zap.String("command", ctx.Command.Name), zap.Error(err))
			return cli.NewExitError(err, 1)
		}
		return nil
	}
}

func (e *env) arg() (string, error) {
	if !e.ctx.Args().Present() {
		return "", errNoArgument
	}
	return e.ctx.Args().First(), nil
}

func (e *env) data() ([]byte, error) {
	s, err := e.arg()
	if err != nil {
		return nil, err
	}
	return options.DecodeData(e.cfg.ApplicationConfiguration.Format, s)
}

func (e *env) encode(b []byte) string {
	// Format is validated by the configuration.
	s, _ := options.EncodeData(e.cfg.ApplicationConfiguration.Format, b)
	return s
}

func (e *env) readerOptions() []io.ReaderOption {
	return e.cfg.Decoder.ReaderOptions()
}

func (e *env) print(obj json.OrderedObject) error {
	out, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.ctx.App.Writer, string(out))
	return err
}

// decodeAll decodes the whole data with s, trailing bytes are an error.
func decodeAll[T any](e *env, s io.Serializer[T], data []byte) (T, error) {
	var (
		v  T
		fn = func(r *io.BinReader) { v = s.DecodeBinary(r) }
	)
	err := io.FromByteArrayStrict(decoder(fn), data, e.readerOptions()...)
	if err != nil {
		var zero T
		return zero, err
	}
	e.log.Debug("decoded", zap.Int("bytes", len(data)), zap.String("type", fmt.Sprintf("%T", v)))
	return v, nil
}

// decoder adapts a function to the DecodeBinary method.
type decoder func(*io.BinReader)

func (d decoder) DecodeBinary(r *io.BinReader) { d(r) }

// NewCommands returns codec commands.
func NewCommands() []cli.Command {
	vectorFlags := append([]cli.Flag{kindFlag}, options.Common...)
	return []cli.Command{
		{
			Name:  "varint",
			Usage: "Variable-length integer operations",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode a non-negative integer",
					UsageText: "varint encode [--format <format>] <number>",
					Action:    withEnv(varintEncode),
					Flags:     options.Common,
				},
				{
					Name:      "decode",
					Usage:     "Decode a variable-length integer",
					UsageText: "varint decode [--format <format>] [--strict] <data>",
					Action:    withEnv(varintDecode),
					Flags:     options.Common,
				},
			},
		},
		{
			Name:  "bytes",
			Usage: "Length-prefixed byte string operations",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Prefix the given data with its length",
					UsageText: "bytes encode [--format <format>] <data>",
					Action:    withEnv(bytesEncode),
					Flags:     options.Common,
				},
				{
					Name:      "decode",
					Usage:     "Decode a length-prefixed byte string",
					UsageText: "bytes decode [--format <format>] <data>",
					Action:    withEnv(bytesDecode),
					Flags:     options.Common,
				},
			},
		},
		{
			Name:  "string",
			Usage: "Length-prefixed string operations",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode the given text",
					UsageText: "string encode [--format <format>] <text>",
					Action:    withEnv(stringEncode),
					Flags:     options.Common,
				},
				{
					Name:      "decode",
					Usage:     "Decode a length-prefixed string",
					UsageText: "string decode [--format <format>] <data>",
					Action:    withEnv(stringDecode),
					Flags:     options.Common,
				},
			},
		},
		{
			Name:  "vector",
			Usage: "Fixed-width element vector operations",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode the given elements as a vector",
					UsageText: "vector encode [--kind uint256|int32] [--format <format>] <element>...",
					Description: `Elements of uint256 kind are given in the selected format and must
   be exactly 32 bytes long, int32 elements are decimal numbers.`,
					Action: withEnv(vectorEncode),
					Flags:  vectorFlags,
				},
				{
					Name:      "decode",
					Usage:     "Decode a vector",
					UsageText: "vector decode [--kind uint256|int32] [--format <format>] <data>",
					Action:    withEnv(vectorDecode),
					Flags:     vectorFlags,
				},
				{
					Name:      "merkle",
					Usage:     "Calculate Merkle root of a uint256 vector",
					UsageText: "vector merkle [--format <format>] <data>",
					Action:    withEnv(vectorMerkle),
					Flags:     options.Common,
				},
			},
		},
		{
			Name:      "hash",
			Usage:     "Hash the given data",
			UsageText: "hash [--alg sha256|sha256d|hash160|checksum] [--format <format>] <data>",
			Action:    withEnv(hashData),
			Flags: append([]cli.Flag{cli.StringFlag{
				Name:  "alg, a",
				Value: "sha256d",
				Usage: "hash algorithm: sha256, sha256d, hash160 or checksum",
			}}, options.Common...),
		},
		{
			Name:      "target",
			Usage:     "Expand compact (nBits) target representation",
			UsageText: "target <nBits>",
			Action:    withEnv(expandTarget),
			Flags:     options.Common,
		},
	}
}

func varintEncode(e *env) error {
	s, err := e.arg()
	if err != nil {
		return err
	}
	var b []byte
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return err
		}
		b, err = io.EncodeVarInt(i)
		if err != nil {
			return err
		}
	} else {
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		b, err = io.Serialize[uint64](io.VarIntSerializer{}, u)
		if err != nil {
			return err
		}
	}
	return e.print(json.OrderedObject{
		{Key: "size", Value: len(b)},
		{Key: "data", Value: e.encode(b)},
	})
}

func varintDecode(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	v, n, err := io.DecodeVarInt(data, e.readerOptions()...)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "value", Value: v},
		{Key: "size", Value: n},
		{Key: "canonical", Value: n == io.GetVarIntSize(v)},
		{Key: "remaining", Value: len(data) - n},
	})
}

func bytesEncode(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	b, err := io.Serialize[[]byte](io.BytesSerializer{}, data)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "size", Value: len(b)},
		{Key: "data", Value: e.encode(b)},
	})
}

func bytesDecode(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	b, err := decodeAll[[]byte](e, io.BytesSerializer{}, data)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "length", Value: len(b)},
		{Key: "data", Value: e.encode(b)},
	})
}

func stringEncode(e *env) error {
	s, err := e.arg()
	if err != nil {
		return err
	}
	b, err := io.Serialize[string](io.VarStringSerializer{}, s)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "size", Value: len(b)},
		{Key: "data", Value: e.encode(b)},
	})
}

func stringDecode(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	s, err := decodeAll[string](e, io.VarStringSerializer{}, data)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "length", Value: len(s)},
		{Key: "value", Value: s},
	})
}

func vectorEncode(e *env) error {
	args := e.ctx.Args()
	var (
		b   []byte
		err error
	)
	switch kind := e.ctx.String("kind"); kind {
	case kindUint256:
		elems := make([][]byte, len(args))
		for i := range args {
			elems[i], err = options.DecodeData(e.cfg.ApplicationConfiguration.Format, args[i])
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		b, err = io.Serialize[[][]byte](io.Uint256VectorSerializer{}, elems)
	case kindInt32:
		elems := make([]int32, len(args))
		for i := range args {
			v, err := strconv.ParseInt(args[i], 10, 32)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = int32(v)
		}
		b, err = io.Serialize[[]int32](io.Int32VectorSerializer{}, elems)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "count", Value: len(args)},
		{Key: "size", Value: len(b)},
		{Key: "data", Value: e.encode(b)},
	})
}

func vectorDecode(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	maxSize := e.cfg.Decoder.MaxArraySize
	switch kind := e.ctx.String("kind"); kind {
	case kindUint256:
		s := io.SerializerFunc[[][]byte]{
			Decode: func(r *io.BinReader) [][]byte { return r.ReadUint256Vector(maxSize) },
		}
		elems, err := decodeAll[[][]byte](e, s, data)
		if err != nil {
			return err
		}
		res := make([]string, len(elems))
		for i := range elems {
			res[i] = e.encode(elems[i])
		}
		return e.print(json.OrderedObject{
			{Key: "count", Value: len(elems)},
			{Key: "elements", Value: res},
		})
	case kindInt32:
		s := io.SerializerFunc[[]int32]{
			Decode: func(r *io.BinReader) []int32 { return r.ReadInt32Vector(maxSize) },
		}
		elems, err := decodeAll[[]int32](e, s, data)
		if err != nil {
			return err
		}
		return e.print(json.OrderedObject{
			{Key: "count", Value: len(elems)},
			{Key: "elements", Value: elems},
		})
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
}

// hashVector is a uint256 vector with a decoding limit.
type hashVector struct {
	hashes  []util.Uint256
	maxSize int
}

// EncodeBinary implements io.Serializable.
func (v *hashVector) EncodeBinary(w *io.BinWriter) {
	io.WriteArray(w, v.hashes)
}

// DecodeBinary implements io.Serializable.
func (v *hashVector) DecodeBinary(r *io.BinReader) {
	v.hashes = io.ReadArray[util.Uint256](r, v.maxSize)
}

func vectorMerkle(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	v := &hashVector{maxSize: e.cfg.Decoder.MaxArraySize}
	if err = io.FromByteArrayStrict(v, data, e.readerOptions()...); err != nil {
		return err
	}
	if len(v.hashes) == 0 {
		return errors.New("empty vector")
	}
	id, err := hash.Serializable(v)
	if err != nil {
		return err
	}
	return e.print(json.OrderedObject{
		{Key: "count", Value: len(v.hashes)},
		{Key: "id", Value: id.StringLE()},
		{Key: "root", Value: hash.CalcMerkleRoot(v.hashes).StringLE()},
	})
}

func hashData(e *env) error {
	data, err := e.data()
	if err != nil {
		return err
	}
	var h []byte
	switch alg := e.ctx.String("alg"); alg {
	case "sha256":
		u := hash.Sha256(data)
		h = u.BytesBE()
	case "sha256d":
		u := hash.DoubleSha256(data)
		h = u.BytesBE()
	case "hash160":
		u := hash.Hash160(data)
		h = u.BytesBE()
	case "checksum":
		h = hash.Checksum(data)
	default:
		return fmt.Errorf("unknown algorithm %q", alg)
	}
	return e.print(json.OrderedObject{
		{Key: "algorithm", Value: e.ctx.String("alg")},
		{Key: "hash", Value: e.encode(h)},
	})
}

func expandTarget(e *env) error {
	s, err := e.arg()
	if err != nil {
		return err
	}
	bits, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	target, overflow := util.Uint256FromCompact(uint32(bits))
	if overflow {
		e.log.Warn("target overflows 256 bits", zap.String("bits", s))
	}
	return e.print(json.OrderedObject{
		{Key: "bits", Value: fmt.Sprintf("0x%08x", bits)},
		{Key: "target", Value: util.Uint256String(target)},
		{Key: "short", Value: util.Uint256ShortString(target)},
		{Key: "overflow", Value: overflow},
	})
}
