package mandel

import (
	"errors"
	"slices"
	"testing"
)

func TestLandmark(t *testing.T) {
	r, err := Landmark("seahorse-valley")
	if err != nil {
		t.Fatalf("Landmark: %v", err)
	}
	if r != SeahorseValley {
		t.Errorf("got %+v", r)
	}

	if _, err := Landmark("atlantis"); !errors.Is(err, ErrUnknownLandmark) {
		t.Errorf("got %v, expected %v", err, ErrUnknownLandmark)
	}

	names := LandmarkNames()
	if len(names) != 6 || !slices.IsSorted(names) {
		t.Errorf("unexpected names %v", names)
	}
}

func TestViewStateBounds(t *testing.T) {
	v := ViewState{Center: Point{1, -1}, Size: Point{4, 2}}
	want := Region{Xmin: -1, Xmax: 3, Ymin: -2, Ymax: 0}
	if got := v.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, expected %+v", got, want)
	}
}
