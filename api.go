package mandel

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrUnknownEvent = errors.New("unknown event kind")
	ErrOutOfBounds  = errors.New("pixel out of bounds")
)

// Plane is what an input source and a display consume.
type Plane interface {
	Apply(ev Event) error
	Recompute()
	Status() RenderStatus
	Image() *image.RGBA
	Snapshot() Snapshot
}

var _ Plane = (*Engine)(nil)

type EventKind string

const (
	PressLeft  EventKind = "press-left"
	PressRight EventKind = "press-right"
	Move       EventKind = "move"
)

// Event is a pointer event at a pixel of the grid.
type Event struct {
	Kind EventKind `json:"kind"`
	X    int       `json:"x"`
	Y    int       `json:"y"`
}

func (ev Event) Pixel() image.Point {
	return image.Pt(ev.X, ev.Y)
}

// Apply translates a pointer event: a left press zooms in and recenters on the pixel,
// a right press zooms out and recenters, a move updates the cursor.
// Events outside the grid are rejected without touching the view.
func (e *Engine) Apply(ev Event) error {
	p := ev.Pixel()
	if !e.Contains(p) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, p, e.Bounds())
	}

	switch ev.Kind {
	case PressLeft:
		e.ZoomIn()
		e.Recenter(p)
	case PressRight:
		e.ZoomOut()
		e.Recenter(p)
	case Move:
		e.SetCursor(p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return nil
}

// StatusMessage is sent to a display after every event, following the frame
// if the event invalidated it. Error is set when the event was rejected.
type StatusMessage struct {
	Snapshot
	Error string `json:"error,omitempty"`
}
