package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cfoust/royale/pkg/config"
	"github.com/cfoust/royale/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Sim struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files for the match." type:"file"`

		Duration  float64 `help:"Seconds of game time to simulate." default:"60"`
		Step      float64 `help:"Fixed step in seconds. Defaults to one tick at the configured tick rate."`
		Realtime  bool    `help:"Step against the wall clock instead of as fast as possible."`
		Forward   bool    `help:"Hold the forward key."`
		Strafe    string  `help:"Hold a strafe key." enum:"none,left,right" default:"none"`
		Sprint    bool    `help:"Hold the sprint key."`
		Crouch    bool    `help:"Start crouched."`
		Yaw       float64 `help:"Camera yaw in degrees."`
		Slot      int     `help:"Weapon slot to hold."`
		FireEvery float64 `help:"Pull the trigger every this many seconds. Zero never fires." default:"0.5"`
		Out       string  `help:"Write CBOR snapshots to this file." type:"path"`
		Every     float64 `help:"Seconds between recorded snapshots." default:"0.1"`
	} `cmd:"" help:"Run a headless scripted match."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`

	Schema struct {
	} `cmd:"" help:"Write a JSON schema for configuration files to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env")
	}

	if len(os.Args) == 1 {
		CLI.Sim.Duration = 60
		CLI.Sim.Strafe = "none"
		CLI.Sim.FireEvery = 0.5
		CLI.Sim.Every = 0.1
		if err := simCommand(nil); err != nil {
			writeError(err)
		}
		return
	}

	ctx := kong.Parse(&CLI,
		kong.Name("royale"),
		kong.Description("a battle royale gameplay core"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"royale %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	switch ctx.Command() {
	case "sim":
		fallthrough
	case "sim <configs>":
		if err := simCommand(CLI.Sim.Configs); err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	case "schema":
		data, err := config.MarshalJSONSchema()
		if err != nil {
			writeError(err)
		}
		os.Stdout.Write(data)
	}
}
