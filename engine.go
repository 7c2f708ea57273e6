package mandel

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/marben/mandelplane/parallel"
)

// RenderStatus tells whether the sample grid matches the current view.
type RenderStatus int

const (
	Stale RenderStatus = iota
	Fresh
)

func (s RenderStatus) String() string {
	switch s {
	case Stale:
		return "stale"
	case Fresh:
		return "fresh"
	}
	return fmt.Sprintf("RenderStatus(%d)", int(s))
}

// Sample is one cell of the grid: a pixel and its color.
type Sample struct {
	Pos   image.Point
	Color color.RGBA
}

// Engine owns a view of the plane and the colored sample grid rendered from it.
//
// An Engine is not safe for concurrent use. Pixel arguments must lie within
// the grid; Contains can be used to check untrusted input.
type Engine struct {
	width, height int
	aspectRatio   float64

	maxIter  int
	gradient Gradient
	workers  int
	tileSize int
	logger   *slog.Logger

	view    ViewState
	cursor  Point
	status  RenderStatus
	samples []Sample
}

// Option configures the Engine.
type Option func(*Engine)

// WithMaxIter sets the escape-time iteration cap.
func WithMaxIter(n int) Option {
	return func(e *Engine) {
		e.maxIter = n
	}
}

// WithGradient replaces DefaultGradient.
func WithGradient(g Gradient) Option {
	return func(e *Engine) {
		e.gradient = g
	}
}

// WithWorkers renders the grid in tiles on n goroutines. 1 is a plain row-major
// pass on the caller's goroutine, below 1 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithTileSize sets the edge of the square tiles used when rendering with several workers.
func WithTileSize(n int) Option {
	return func(e *Engine) {
		e.tileSize = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine for a width×height grid showing the initial view:
// centered on the origin at zoom level 0. The first Recompute fills the grid.
func NewEngine(width, height int, opts ...Option) *Engine {
	if width <= 0 || height <= 0 {
		panic("plane dimensions must be positive")
	}

	e := &Engine{
		width:       width,
		height:      height,
		aspectRatio: float64(height) / float64(width),
		maxIter:     MaxIter,
		gradient:    DefaultGradient,
		workers:     1,
		tileSize:    64,
		logger:      slog.New(slog.DiscardHandler),
		status:      Stale,
		samples:     make([]Sample, width*height),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxIter <= 0 {
		panic("max iterations must be positive")
	}
	if e.tileSize <= 0 {
		panic("tile size must be positive")
	}

	e.view = ViewState{Size: sizeAt(0, e.aspectRatio)}
	for i := range e.samples {
		e.samples[i].Pos = image.Pt(i%width, i/width)
	}

	return e
}

func (e *Engine) Bounds() image.Rectangle {
	return image.Rect(0, 0, e.width, e.height)
}

// Contains reports whether p is a valid pixel argument.
func (e *Engine) Contains(p image.Point) bool {
	return p.In(e.Bounds())
}

func (e *Engine) MaxIter() int {
	return e.maxIter
}

func (e *Engine) View() ViewState {
	return e.view
}

// Cursor returns the plane point under the last pixel passed to SetCursor.
func (e *Engine) Cursor() Point {
	return e.cursor
}

func (e *Engine) Status() RenderStatus {
	return e.status
}

// MapPixel maps p through the current view.
func (e *Engine) MapPixel(p image.Point) Point {
	return MapPixelToPlane(p, e.view, e.width, e.height)
}

func (e *Engine) ZoomIn() {
	e.setZoom(e.view.Zoom + 1)
}

func (e *Engine) ZoomOut() {
	e.setZoom(e.view.Zoom - 1)
}

func (e *Engine) setZoom(zoom int) {
	e.view.Zoom = zoom
	e.view.Size = sizeAt(zoom, e.aspectRatio)
	e.status = Stale
}

// Recenter moves the view center to the plane point under p.
func (e *Engine) Recenter(p image.Point) {
	e.view.Center = e.MapPixel(p)
	e.status = Stale
}

// SetCursor records the plane point under p. It does not invalidate the grid.
func (e *Engine) SetCursor(p image.Point) {
	e.cursor = e.MapPixel(p)
}

// Frame centers the view on r at the deepest zoom level that still shows all of r.
func (e *Engine) Frame(r Region) {
	e.view.Center = r.Center()
	e.setZoom(zoomToFit(r, e.aspectRatio))
}

// Recompute renders every cell of the grid if the view changed since the last pass.
func (e *Engine) Recompute() {
	if e.status != Stale {
		return
	}

	start := time.Now()
	view := e.view

	pool := parallel.Start(e.workers)
	if pool.Workers() == 1 {
		e.renderTile(view, e.Bounds())
	} else {
		for _, tile := range splitTiles(e.Bounds(), e.tileSize, e.tileSize) {
			pool.Do(func() { e.renderTile(view, tile) })
		}
	}
	pool.Wait()

	e.status = Fresh
	e.logger.Debug("recomputed plane",
		"width", e.width, "height", e.height, "zoom", view.Zoom,
		"workers", pool.Workers(), "elapsed", time.Since(start))
}

// renderTile writes the cells of tile only, so tiles can be rendered concurrently.
func (e *Engine) renderTile(view ViewState, tile image.Rectangle) {
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			p := image.Pt(x, y)
			c := MapPixelToPlane(p, view, e.width, e.height)
			n := CountIterations(c.Complex(), e.maxIter)
			e.samples[y*e.width+x] = Sample{Pos: p, Color: e.gradient.Color(n, e.maxIter)}
		}
	}
}

// Samples returns the grid in row-major order. The slice is owned by the engine
// and overwritten by the next Recompute; callers must not modify it.
func (e *Engine) Samples() []Sample {
	return e.samples
}

// At returns the cell of pixel p.
func (e *Engine) At(p image.Point) Sample {
	return e.samples[p.Y*e.width+p.X]
}

// Image copies the grid into a new RGBA image.
func (e *Engine) Image() *image.RGBA {
	img := image.NewRGBA(e.Bounds())
	for _, s := range e.samples {
		img.SetRGBA(s.Pos.X, s.Pos.Y, s.Color)
	}
	return img
}

// DescribeStatus returns the text shown next to the plane.
func (e *Engine) DescribeStatus() string {
	var sb strings.Builder
	sb.WriteString("Mandelbrot Set\n")
	fmt.Fprintf(&sb, "Center: (%g, %g)\n", e.view.Center.X, e.view.Center.Y)
	fmt.Fprintf(&sb, "Cursor: (%g, %g)\n", e.cursor.X, e.cursor.Y)
	sb.WriteString("Left-Click to Zoom In\n")
	sb.WriteString("Right-Click to Zoom Out\n")
	return sb.String()
}

// Snapshot is the engine state handed to status consumers.
type Snapshot struct {
	Center Point  `json:"center"`
	Cursor Point  `json:"cursor"`
	Size   Point  `json:"size"`
	Zoom   int    `json:"zoom"`
	Status string `json:"status"`
	Text   string `json:"text"`
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Center: e.view.Center,
		Cursor: e.cursor,
		Size:   e.view.Size,
		Zoom:   e.view.Zoom,
		Status: e.status.String(),
		Text:   e.DescribeStatus(),
	}
}
