// Package geom holds the integer plane primitives shared by the wire codec.
package geom

import "fmt"

// Point is a database-unit coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d %d)", p.X, p.Y)
}

// Add offsets p by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned box. A Rect built with NewRect is normalized so
// that XMin <= XMax and YMin <= YMax.
type Rect struct {
	XMin, YMin int
	XMax, YMax int
}

// NewRect builds a normalized rectangle from two corners.
func NewRect(x1, y1, x2, y2 int) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{XMin: x1, YMin: y1, XMax: x2, YMax: y2}
}

// EmptyRect returns an inverted rectangle suitable as a Merge seed.
func EmptyRect() Rect {
	const big = int(^uint(0) >> 1)
	return Rect{XMin: big, YMin: big, XMax: -big, YMax: -big}
}

// Empty reports whether r is inverted (nothing merged into it yet).
func (r Rect) Empty() bool {
	return r.XMin > r.XMax || r.YMin > r.YMax
}

// Offset translates r by p.
func (r Rect) Offset(p Point) Rect {
	return Rect{XMin: r.XMin + p.X, YMin: r.YMin + p.Y, XMax: r.XMax + p.X, YMax: r.YMax + p.Y}
}

// Merge returns the bounding box of r and o.
func (r Rect) Merge(o Rect) Rect {
	if o.Empty() {
		return r
	}
	if r.Empty() {
		return o
	}
	return Rect{
		XMin: min(r.XMin, o.XMin),
		YMin: min(r.YMin, o.YMin),
		XMax: max(r.XMax, o.XMax),
		YMax: max(r.YMax, o.YMax),
	}
}

// Width is the x extent.
func (r Rect) Width() int { return r.XMax - r.XMin }

// Height is the y extent.
func (r Rect) Height() int { return r.YMax - r.YMin }

func (r Rect) String() string {
	return fmt.Sprintf("[%d %d %d %d]", r.XMin, r.YMin, r.XMax, r.YMax)
}
