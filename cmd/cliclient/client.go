package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandelplane"
	_ "golang.org/x/image/bmp"
)

// frames are whole encoded images, far above the default 32KiB message limit
const readLimit = 64 << 20

// run connects to the server, waits for the initial frame and status,
// then sends each event and prints the status that answers it.
func run(ctx context.Context, cli *CLI, out io.Writer, logger *slog.Logger) error {
	logger.Info("connecting", "url", cli.URL)
	c, _, err := websocket.Dial(ctx, cli.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(readLimit)

	msg, err := awaitStatus(ctx, c, logger)
	if err != nil {
		return err
	}
	fmt.Fprint(out, msg.Text)

	for _, ev := range cli.Parsed {
		logger.Debug("sending event", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
		if err := wsjson.Write(ctx, c, ev); err != nil {
			return fmt.Errorf("could not send event: %w", err)
		}

		msg, err := awaitStatus(ctx, c, logger)
		if err != nil {
			return err
		}
		if msg.Error != "" {
			logger.Warn("event rejected", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "error", msg.Error)
			continue
		}
		fmt.Fprint(out, msg.Text)
	}

	if err := c.Close(websocket.StatusNormalClosure, ""); err != nil {
		logger.Debug("close handshake failed", "error", err)
	}
	return nil
}

// awaitStatus reads messages until a status arrives, logging the frames it skips over.
func awaitStatus(ctx context.Context, c *websocket.Conn, logger *slog.Logger) (mandel.StatusMessage, error) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return mandel.StatusMessage{}, fmt.Errorf("could not read from server: %w", err)
		}

		if typ == websocket.MessageBinary {
			cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				return mandel.StatusMessage{}, fmt.Errorf("could not decode frame: %w", err)
			}
			logger.Info("frame", "format", format, "width", cfg.Width, "height", cfg.Height, "bytes", len(data))
			continue
		}

		var msg mandel.StatusMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return mandel.StatusMessage{}, fmt.Errorf("could not decode status: %w", err)
		}
		logger.Debug("status", "zoom", msg.Zoom, "status", msg.Status)
		return msg, nil
	}
}
