package main

import (
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Verbose bool `short:"v" help:"Enable debug logging."`

		Gen    genCmd    `cmd:"" help:"Generate Parse and ToTokens methods for annotated types."`
		Schema schemaCmd `cmd:"" help:"Print the parse plans of annotated types."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A command-line tool for structmeta.`),
		kong.Vars{"version": version},
	)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
