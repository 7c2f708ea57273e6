package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	mandel "github.com/marben/mandelplane"
	"golang.org/x/sync/errgroup"
)

type CLI struct {
	Addr     string `help:"Listen address" default:":8080"`
	Width    int    `help:"Plane width in pixels" default:"800"`
	Height   int    `help:"Plane height in pixels" default:"600"`
	MaxIter  int    `help:"Escape-time iteration cap" default:"64"`
	Workers  int    `help:"Render goroutines per session, 0 for GOMAXPROCS" default:"1"`
	Palette  string `help:"RIFF PAL file replacing the default gradient"`
	Landmark string `help:"Initial view, one of: ${landmarks}"`
	Format   string `help:"Frame encoding" enum:"png,bmp" default:"png"`
	Static   string `help:"Directory served at /"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Gradient mandel.Gradient `kong:"-"`
	Region   *mandel.Region  `kong:"-"`
}

func (c *CLI) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid plane size %dx%d", c.Width, c.Height)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("invalid max iterations: %d", c.MaxIter)
	}

	if c.Palette != "" {
		f, err := os.Open(c.Palette)
		if err != nil {
			return fmt.Errorf("could not open palette %q: %w", c.Palette, err)
		}
		defer f.Close()

		if c.Gradient, err = mandel.LoadGradientRIFF(f); err != nil {
			return fmt.Errorf("could not load palette %q: %w", c.Palette, err)
		}
	}

	if c.Landmark != "" {
		r, err := mandel.Landmark(c.Landmark)
		if err != nil {
			return err
		}
		c.Region = &r
	}

	if c.Static != "" {
		if info, err := os.Stat(c.Static); err != nil {
			return fmt.Errorf("invalid static dir %q: %w", c.Static, err)
		} else if !info.IsDir() {
			return fmt.Errorf("invalid static dir %q: not a directory", c.Static)
		}
	}

	return nil
}

// planeConfig returns what every session needs to build its own engine.
func (c *CLI) planeConfig(logger *slog.Logger) planeConfig {
	opts := []mandel.Option{
		mandel.WithMaxIter(c.MaxIter),
		mandel.WithWorkers(c.Workers),
		mandel.WithLogger(logger),
	}
	if c.Gradient != nil {
		opts = append(opts, mandel.WithGradient(c.Gradient))
	}
	return planeConfig{
		width:  c.Width,
		height: c.Height,
		opts:   opts,
		region: c.Region,
		format: c.Format,
	}
}

// main is the entry point for the plane server.
// Every websocket connection drives its own plane; nothing is shared between clients.
func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("server"),
		kong.Description("Serves an interactive Mandelbrot plane over websockets."),
		kong.Vars{"landmarks": strings.Join(mandel.LandmarkNames(), ", ")},
	)

	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cli, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cli *CLI, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cli.Addr,
		Handler:           newMux(cli.planeConfig(logger), cli.Static, logger),
		ReadHeaderTimeout: 5 * time.Second,
		// sessions end with the server
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		logger.Info("listening", "addr", cli.Addr, "width", cli.Width, "height", cli.Height, "format", cli.Format)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
