package geom

import "fmt"

// Orient is one of the eight orthogonal placements of a cell.
type Orient uint8

const (
	R0 Orient = iota
	R90
	R180
	R270
	MY
	MYR90
	MX
	MXR90
)

var orientNames = [...]string{"R0", "R90", "R180", "R270", "MY", "MYR90", "MX", "MXR90"}

func (o Orient) String() string {
	if int(o) < len(orientNames) {
		return orientNames[o]
	}
	return fmt.Sprintf("Orient(%d)", uint8(o))
}

// ParseOrient maps a DEF orientation name to an Orient.
func ParseOrient(s string) (Orient, bool) {
	for i, n := range orientNames {
		if n == s {
			return Orient(i), true
		}
	}
	return R0, false
}

// Transform applies an orientation about the origin followed by an offset.
// Every orientation maps horizontal and vertical lines onto horizontal or
// vertical lines, so routed wire geometry stays orthogonal.
type Transform struct {
	Orient Orient
	Offset Point
}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	x, y := p.X, p.Y
	switch t.Orient {
	case R90:
		x, y = -y, x
	case R180:
		x, y = -x, -y
	case R270:
		x, y = y, -x
	case MY:
		x = -x
	case MYR90:
		x, y = -y, -x
	case MX:
		y = -y
	case MXR90:
		x, y = y, x
	}
	return Point{X: x + t.Offset.X, Y: y + t.Offset.Y}
}

// ApplyRect maps both corners of r and renormalizes.
func (t Transform) ApplyRect(r Rect) Rect {
	a := t.Apply(Point{X: r.XMin, Y: r.YMin})
	b := t.Apply(Point{X: r.XMax, Y: r.YMax})
	return NewRect(a.X, a.Y, b.X, b.Y)
}
