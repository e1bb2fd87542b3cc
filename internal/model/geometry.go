package model

import (
	"fmt"
	"image"
)

// Point is an absolute screen coordinate in pixels, origin at the
// top-left corner of the primary display.
type Point struct {
	X int
	Y int
}

// Rect is a rectangular screen region delimited by its top-left and
// bottom-right corners.
type Rect struct {
	Start Point
	End   Point
}

// NewRect returns a Rect from top-left and bottom-right coordinates.
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{Start: Point{X: x0, Y: y0}, End: Point{X: x1, Y: y1}}
}

// Width returns the width of the region in pixels.
func (r Rect) Width() int { return r.End.X - r.Start.X }

// Height returns the height of the region in pixels.
func (r Rect) Height() int { return r.End.Y - r.Start.Y }

// Image returns the region as a stdlib image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Start.X, r.Start.Y, r.End.X, r.End.Y)
}

// Validate validates the region geometry.
func (r Rect) Validate() error {
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("region must have positive width and height: %w", ErrNotValid)
	}

	return nil
}
