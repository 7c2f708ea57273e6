package mandel

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	// MaxIter is the default iteration cap of the escape-time loop.
	MaxIter = 64

	// BaseWidth and BaseHeight are the plane extent at zoom level 0,
	// before the height is scaled by the aspect ratio.
	BaseWidth  = 4.0
	BaseHeight = 4.0

	// ZoomFactor scales the visible extent once per zoom level.
	ZoomFactor = 0.5
)

var ErrUnknownLandmark = errors.New("unknown landmark")

// Point is a position in the complex plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

func (r Region) Center() Point {
	return Point{X: (r.Xmin + r.Xmax) / 2, Y: (r.Ymin + r.Ymax) / 2}
}

func (r Region) Size() Point {
	return Point{X: r.Xmax - r.Xmin, Y: r.Ymax - r.Ymin}
}

// ViewState is the visible part of the plane.
// Size is always derived from Zoom, see sizeAt.
type ViewState struct {
	Center Point
	Size   Point
	Zoom   int
}

// Bounds returns the plane rectangle covered by the view.
func (v ViewState) Bounds() Region {
	return Region{
		Xmin: v.Center.X - v.Size.X/2,
		Xmax: v.Center.X + v.Size.X/2,
		Ymin: v.Center.Y - v.Size.Y/2,
		Ymax: v.Center.Y + v.Size.Y/2,
	}
}

func sizeAt(zoom int, aspectRatio float64) Point {
	scale := math.Pow(ZoomFactor, float64(zoom))
	return Point{
		X: BaseWidth * scale,
		Y: BaseHeight * aspectRatio * scale,
	}
}

// zoomToFit returns the deepest zoom level at which the view still covers r on both axes.
func zoomToFit(r Region, aspectRatio float64) int {
	size := r.Size()
	zx := math.Floor(math.Log(size.X/BaseWidth) / math.Log(ZoomFactor))
	zy := math.Floor(math.Log(size.Y/(BaseHeight*aspectRatio)) / math.Log(ZoomFactor))
	return int(min(zx, zy))
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var landmarks = map[string]Region{
	"seahorse-valley":  SeahorseValley,
	"elephant-valley":  ElephantValley,
	"spiral-minibrot":  SpiralMinibrot,
	"triple-spiral":    TripleSpiral,
	"dragon-valley":    ValleyOfTheDragon,
	"mini-spiral-brot": MinibrotInMiniSpiral,
}

// Landmark looks up a named region.
func Landmark(name string) (Region, error) {
	r, ok := landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownLandmark, name)
	}
	return r, nil
}

// LandmarkNames lists the names accepted by Landmark, sorted.
func LandmarkNames() []string {
	names := make([]string, 0, len(landmarks))
	for n := range landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
