package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandelplane"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		want    mandel.Event
		wantErr bool
	}{
		{in: "left:10,20", want: mandel.Event{Kind: mandel.PressLeft, X: 10, Y: 20}},
		{in: "right:0,0", want: mandel.Event{Kind: mandel.PressRight}},
		{in: "move:799,599", want: mandel.Event{Kind: mandel.Move, X: 799, Y: 599}},
		{in: "left", wantErr: true},
		{in: "scroll:1,2", wantErr: true},
		{in: "move:1", wantErr: true},
		{in: "move:1,2,3", wantErr: true},
		{in: "move:a,b", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseEvent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEvent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEvent(%q) = %+v, expected %+v", tt.in, got, tt.want)
		}
	}
}

// planeServer answers like the real server, driving a small engine.
func planeServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.CloseNow()

		ctx := r.Context()
		e := mandel.NewEngine(16, 12)
		publish := func(errMsg string) error {
			if e.Status() == mandel.Stale {
				e.Recompute()
				var buf bytes.Buffer
				if err := mandel.EncodeFrame(&buf, e.Image(), mandel.FormatPNG); err != nil {
					return err
				}
				if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
					return err
				}
			}
			return wsjson.Write(ctx, c, mandel.StatusMessage{Snapshot: e.Snapshot(), Error: errMsg})
		}

		if publish("") != nil {
			return
		}
		for {
			var ev mandel.Event
			if err := wsjson.Read(ctx, c, &ev); err != nil {
				return
			}
			errMsg := ""
			if err := e.Apply(ev); err != nil {
				errMsg = err.Error()
			}
			if publish(errMsg) != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := planeServer(t)
	cli := &CLI{
		URL:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		Events: []string{"left:0,0", "move:8,6", "right:99,99"},
	}
	if err := cli.Validate(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(ctx, cli, &out, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("run: %v", err)
	}

	// initial view, zoom in, move; the out of bounds press prints nothing
	text := out.String()
	if n := strings.Count(text, "Mandelbrot Set\n"); n != 3 {
		t.Errorf("printed %d status blocks, expected 3:\n%s", n, text)
	}
	if !strings.Contains(text, "Center: (-1, 0.75)") {
		t.Errorf("zoom in not reflected:\n%s", text)
	}
	if !strings.Contains(text, "Cursor: (-1, 0.75)") {
		t.Errorf("cursor not reflected:\n%s", text)
	}
}

func TestStatusMessageJSON(t *testing.T) {
	msg := mandel.StatusMessage{Snapshot: mandel.Snapshot{Zoom: 3, Status: "fresh"}}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"zoom":3`)) || bytes.Contains(data, []byte(`"error"`)) {
		t.Errorf("unexpected encoding %s", data)
	}
}
