package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"

	"gotolaunch/cli"
	"gotolaunch/config"
	"gotolaunch/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Env     string `help:"Environment file to load." type:"path" default:".env"`

	Serve    cli.ServeCmd    `cmd:"" help:"Run the API server and reminder scheduler." default:"1"`
	Dispatch cli.DispatchCmd `cmd:"" help:"Send all due reminders once and exit."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Create or update the database schema."`
	User     struct {
		Add cli.UserAddCmd `cmd:"" help:"Register a user and print an access token."`
	} `cmd:"" help:"Manage users."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gotolaunch"),
		kong.Description("Product launch checklists and reminders"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	cfg, err := config.Load(CLI.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(gin.ReleaseMode)

	if err := ctx.Run(&cli.Context{Config: cfg}); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
