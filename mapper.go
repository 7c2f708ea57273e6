package mandel

import "image"

// MapPixelToPlane converts a pixel of a w×h grid to the plane point it shows.
// Pixel rows grow downwards while the imaginary axis grows upwards.
//
// The pixel must lie within [0,w)×[0,h).
func MapPixelToPlane(p image.Point, v ViewState, w, h int) Point {
	b := v.Bounds()
	return Point{
		X: float64(p.X)/float64(w)*(b.Xmax-b.Xmin) + b.Xmin,
		Y: float64(h-p.Y)/float64(h)*(b.Ymax-b.Ymin) + b.Ymin,
	}
}

// MapPlaneToPixel is the inverse of MapPixelToPlane. The result is not rounded.
func MapPlaneToPixel(pt Point, v ViewState, w, h int) (x, y float64) {
	b := v.Bounds()
	x = (pt.X - b.Xmin) / (b.Xmax - b.Xmin) * float64(w)
	y = float64(h) - (pt.Y-b.Ymin)/(b.Ymax-b.Ymin)*float64(h)
	return x, y
}
