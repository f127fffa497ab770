package config

// ApplicationConfiguration contains settings of the tool itself rather than
// of the wire format.
type ApplicationConfiguration struct {
	// LogLevel is one of zap levels ("debug", "info", "warn", "error"...).
	LogLevel string `yaml:"LogLevel"`
	// LogPath is a file to write logs to, stderr is used if empty.
	LogPath string `yaml:"LogPath"`
	// LogEncoding is either "console" or "json".
	LogEncoding string `yaml:"LogEncoding"`
	// Format is the default encoding of command arguments and output:
	// "hex", "base64" or "base58".
	Format string `yaml:"Format"`
}
