package main

import (
	"fmt"
	"strings"

	mandel "github.com/marben/mandelplane"
)

var eventKinds = map[string]mandel.EventKind{
	"left":  mandel.PressLeft,
	"right": mandel.PressRight,
	"move":  mandel.Move,
}

// parseEvent reads "left:X,Y", "right:X,Y" or "move:X,Y".
func parseEvent(s string) (mandel.Event, error) {
	name, pos, ok := strings.Cut(s, ":")
	if !ok {
		return mandel.Event{}, fmt.Errorf("invalid event %q: expected KIND:X,Y", s)
	}

	kind, ok := eventKinds[name]
	if !ok {
		return mandel.Event{}, fmt.Errorf("invalid event %q: unknown kind %q", s, name)
	}

	ev := mandel.Event{Kind: kind}
	var rest string
	if n, _ := fmt.Sscanf(pos, "%d,%d%s", &ev.X, &ev.Y, &rest); n != 2 {
		return mandel.Event{}, fmt.Errorf("invalid event %q: expected X,Y pixel coordinates", s)
	}
	return ev, nil
}
