/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/wirecodec/pkg/config"
	"github.com/nspcc-dev/wirecodec/pkg/io"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigFile is a flag for commands that use tool configuration.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the YAML configuration file",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Format is a flag setting the encoding of binary arguments and results.
var Format = cli.StringFlag{
	Name:  "format, f",
	Usage: "binary data encoding: hex, base64 or base58 (overrides configuration)",
}

// Strict is a flag enabling canonical varint checks.
var Strict = cli.BoolFlag{
	Name:  "strict",
	Usage: "reject non-canonical varints (overrides configuration)",
}

// Common is a set of flags every codec command accepts.
var Common = []cli.Flag{ConfigFile, Debug, Format, Strict}

// GetConfigFromContext loads the configuration file given via --config-file
// or returns the default one, command line flags are applied on top of it.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	if path := ctx.String("config-file"); path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	if f := ctx.String("format"); f != "" {
		cfg.ApplicationConfiguration.Format = f
	}
	if ctx.Bool("strict") {
		cfg.Decoder.StrictVarInt = true
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	if cfg.LogEncoding != "" {
		cc.Encoding = cfg.LogEncoding
	}
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := io.MakeDirForFile(logPath, "logger"); err != nil {
			return nil, nil, err
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}

// DecodeData decodes s from the given format ignoring surrounding
// whitespace and an optional 0x prefix for hex.
func DecodeData(format string, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		b   []byte
		err error
	)
	switch format {
	case "hex":
		b, err = hex.DecodeString(strings.TrimPrefix(s, "0x"))
	case "base64":
		b, err = base64.StdEncoding.DecodeString(s)
	case "base58":
		b, err = base58.Decode(s)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", format, err)
	}
	return b, nil
}

// EncodeData encodes b into the given format.
func EncodeData(format string, b []byte) (string, error) {
	switch format {
	case "hex":
		return hex.EncodeToString(b), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(b), nil
	case "base58":
		return base58.Encode(b), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
