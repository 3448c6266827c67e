package main

import (
	"github.com/alecthomas/kong"

	"github.com/yigityalim/imperial-tobacco-web/cmd/catalogd/commands"
	"github.com/yigityalim/imperial-tobacco-web/internal/version"
)

func main() {
	var cli commands.CLI

	kctx := kong.Parse(&cli,
		kong.Name("catalogd"),
		kong.Description("Localized content catalog engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := kctx.Run(&commands.Global{}, &cli)
	kctx.FatalIfErrorf(err)
}
