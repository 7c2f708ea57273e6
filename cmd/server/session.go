package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandelplane"
)

// session translates the events of one websocket client into plane operations.
// It is the plane's only caller, so the plane is never used concurrently.
type session struct {
	conn   *websocket.Conn
	plane  mandel.Plane
	format string
	logger *slog.Logger

	frame bytes.Buffer
}

func newSession(conn *websocket.Conn, plane mandel.Plane, format string, logger *slog.Logger) *session {
	return &session{
		conn:   conn,
		plane:  plane,
		format: format,
		logger: logger,
	}
}

// run sends the initial frame, then answers every event with a status message,
// preceded by a new frame when the event changed the view.
func (s *session) run(ctx context.Context) error {
	if err := s.publish(ctx, ""); err != nil {
		return err
	}

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			return err
		}

		var ev mandel.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("malformed event", "error", err)
			if err := s.publish(ctx, fmt.Sprintf("malformed event: %v", err)); err != nil {
				return err
			}
			continue
		}

		s.logger.Debug("event", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
		if err := s.plane.Apply(ev); err != nil {
			s.logger.Warn("rejected event", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "error", err)
			if err := s.publish(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		if err := s.publish(ctx, ""); err != nil {
			return err
		}
	}
}

func (s *session) publish(ctx context.Context, errMsg string) error {
	if s.plane.Status() == mandel.Stale {
		s.plane.Recompute()

		s.frame.Reset()
		if err := mandel.EncodeFrame(&s.frame, s.plane.Image(), s.format); err != nil {
			return err
		}
		if err := s.conn.Write(ctx, websocket.MessageBinary, s.frame.Bytes()); err != nil {
			return fmt.Errorf("could not send frame: %w", err)
		}
	}

	msg := mandel.StatusMessage{Snapshot: s.plane.Snapshot(), Error: errMsg}
	if err := wsjson.Write(ctx, s.conn, msg); err != nil {
		return fmt.Errorf("could not send status: %w", err)
	}
	return nil
}
