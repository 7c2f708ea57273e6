package mandel

import (
	"errors"
	"testing"
)

func TestEngineApply(t *testing.T) {
	e := NewEngine(800, 600)

	if err := e.Apply(Event{Kind: PressLeft, X: 0, Y: 0}); err != nil {
		t.Fatalf("press left: %v", err)
	}
	v := e.View()
	if v.Zoom != 1 || v.Center != (Point{-1, 0.75}) {
		t.Errorf("after press left: %+v", v)
	}

	if err := e.Apply(Event{Kind: PressRight, X: 400, Y: 300}); err != nil {
		t.Fatalf("press right: %v", err)
	}
	v = e.View()
	if v.Zoom != 0 || v.Center != (Point{-1, 0.75}) {
		t.Errorf("after press right: %+v", v)
	}

	e.Recompute()
	if err := e.Apply(Event{Kind: Move, X: 400, Y: 300}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if e.Cursor() != (Point{-1, 0.75}) {
		t.Errorf("cursor %v", e.Cursor())
	}
	if e.Status() != Fresh {
		t.Errorf("move made the grid %v", e.Status())
	}
}

func TestEngineApplyRejects(t *testing.T) {
	e := NewEngine(80, 60)
	e.Recompute()
	before := e.View()

	tests := []struct {
		ev   Event
		want error
	}{
		{Event{Kind: PressLeft, X: 80, Y: 0}, ErrOutOfBounds},
		{Event{Kind: PressRight, X: 0, Y: -1}, ErrOutOfBounds},
		{Event{Kind: Move, X: -5, Y: 70}, ErrOutOfBounds},
		{Event{Kind: "scroll", X: 1, Y: 1}, ErrUnknownEvent},
	}
	for _, tt := range tests {
		if err := e.Apply(tt.ev); !errors.Is(err, tt.want) {
			t.Errorf("Apply(%+v) = %v, expected %v", tt.ev, err, tt.want)
		}
	}

	if e.View() != before || e.Status() != Fresh {
		t.Errorf("rejected events changed the engine: %+v %v", e.View(), e.Status())
	}
}
