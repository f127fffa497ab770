package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/wirecodec/cli/codec"
	"github.com/nspcc-dev/wirecodec/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "wirecodec\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a wirecodec instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "wirecodec"
	ctl.Version = config.Version
	ctl.Usage = "Wire format primitives encoder and decoder"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, codec.NewCommands()...)
	return ctl
}
