package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"handcricket.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Headless HeadlessCmd      `cmd:"" help:"Play without a screen, gestures from the detector feed"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate games with random gestures"`
	Feed     FeedCmd          `cmd:"" help:"Stream finger counts from stdin to a detector server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handcricket"),
		kong.Description("Hand cricket against the computer, played with your fingers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
