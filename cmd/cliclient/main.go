// cliclient is a command-line client for the plane server.
// It replays pointer events given as arguments and prints the status text after each one.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	mandel "github.com/marben/mandelplane"
)

type CLI struct {
	URL      string        `help:"Server websocket endpoint" default:"ws://localhost:8080/ws"`
	Timeout  time.Duration `help:"Give up on the server after this long" default:"1m"`
	LogLevel string        `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Events   []string      `arg:"" optional:"" help:"Events to send, each one of left:X,Y right:X,Y move:X,Y"`

	Parsed []mandel.Event `kong:"-"`
}

func (c *CLI) Validate() error {
	c.Parsed = c.Parsed[:0]
	for _, s := range c.Events {
		ev, err := parseEvent(s)
		if err != nil {
			return err
		}
		c.Parsed = append(c.Parsed, ev)
	}
	return nil
}

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("cliclient"),
		kong.Description("Drives a plane server session from the command line."),
	)

	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cli.Timeout)
	defer cancel()

	if err := run(ctx, &cli, os.Stdout, logger); err != nil {
		logger.Error("client failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
