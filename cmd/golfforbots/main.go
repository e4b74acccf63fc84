package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play holes interactively in the terminal"`
	Hole     HoleCmd          `cmd:"" help:"Generate a hole and print it"`
	Simulate SimulateCmd      `cmd:"" help:"Play many holes with a built-in policy and report statistics"`
	Server   ServerCmd        `cmd:"" help:"Run the remote stepping server"`
	Bot      BotCmd           `cmd:"" help:"Drive a remote session with a built-in policy"`
	Profile  ProfileCmd       `cmd:"" help:"Validate and print a club profile"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("golfforbots"),
		kong.Description("Procedural golf holes and a stepping environment for golf-playing bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
