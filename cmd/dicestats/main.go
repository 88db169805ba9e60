package main

import (
	"os"

	clicmd "github.com/louisbranch/dicestats/internal/cmd/dicestats"
	entrypoint "github.com/louisbranch/dicestats/internal/platform/cmd"
	"github.com/louisbranch/dicestats/internal/platform/config"
)

func main() {
	var cfg clicmd.Config
	config.ExitOnError("config", entrypoint.ParseConfig(&cfg))
	config.ExitOnError("dicestats", clicmd.NewRootCommand(cfg, os.Stdout).Execute())
}
