package tech

import (
	"fmt"
	"strings"

	"github.com/wippyai/wire-codec/geom"
)

// Direction is the preferred routing direction of a layer.
type Direction uint8

const (
	DirNone Direction = iota
	DirHorizontal
	DirVertical
)

func (d Direction) String() string {
	switch d {
	case DirHorizontal:
		return "horizontal"
	case DirVertical:
		return "vertical"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "none":
		*d = DirNone
	case "horizontal", "h":
		*d = DirHorizontal
	case "vertical", "v":
		*d = DirVertical
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}

// Layer is a routing layer.
type Layer struct {
	Name      string    `json:"name"`
	ID        int       `json:"id"`
	Width     int       `json:"width"`
	Direction Direction `json:"direction"`
}

// HalfWidth is the default half-width (and default extension) of a wire on l.
func (l *Layer) HalfWidth() int {
	return l.Width >> 1
}

// Via is a block or technology via. Top and Bottom are layer ids; BBox is
// the footprint relative to the via origin.
type Via struct {
	Name   string    `json:"name"`
	Boxes  []ViaBox  `json:"-"`
	ID     int       `json:"id"`
	Top    int       `json:"top"`
	Bottom int       `json:"bottom"`
	BBox   geom.Rect `json:"-"`
	Tech   bool      `json:"-"`
}

// ViaBox is one metal or cut box of a via, relative to the via origin.
// Cut layers need not be in the catalog.
type ViaBox struct {
	Box   geom.Rect
	Layer int
}

// AddBox appends a box on layer and returns v.
func (v *Via) AddBox(layer int, r geom.Rect) *Via {
	v.Boxes = append(v.Boxes, ViaBox{Layer: layer, Box: r})
	return v
}

// Connects reports whether the via joins layer id a to layer id b in
// either order.
func (v *Via) Connects(a, b int) bool {
	return (v.Top == a && v.Bottom == b) || (v.Top == b && v.Bottom == a)
}

// Rule is a non-default width rule for one layer. Block rules are scoped
// to the design, the others to the technology.
type Rule struct {
	Name  string `json:"name"`
	ID    int    `json:"id"`
	Layer int    `json:"layer"`
	Width int    `json:"width"`
	Block bool   `json:"-"`
}

// HalfWidth is the wire half-width under r.
func (r *Rule) HalfWidth() int {
	return r.Width >> 1
}

// TermKind distinguishes the two terminal flavours.
type TermKind uint8

const (
	TermITerm TermKind = iota
	TermBTerm
)

func (k TermKind) String() string {
	if k == TermBTerm {
		return "bterm"
	}
	return "iterm"
}

// Terminal is a pin a wire point can attach to.
type Terminal interface {
	Kind() TermKind
	TermID() int
	Name() string
	// Owner is the instance name for an iterm and the net name for a bterm.
	Owner() string
	Net() string
}

// ITerm is an instance pin.
type ITerm struct {
	Pin  string `json:"name"`
	Inst string `json:"inst"`
	NetN string `json:"net"`
	ID   int    `json:"id"`
}

func (t *ITerm) Kind() TermKind { return TermITerm }
func (t *ITerm) TermID() int    { return t.ID }
func (t *ITerm) Name() string   { return t.Pin }
func (t *ITerm) Owner() string  { return t.Inst }
func (t *ITerm) Net() string    { return t.NetN }

func (t *ITerm) String() string {
	return fmt.Sprintf("iterm %d %s/%s", t.ID, t.Inst, t.Pin)
}

// BTerm is a block boundary pin.
type BTerm struct {
	Pin  string `json:"name"`
	NetN string `json:"net"`
	ID   int    `json:"id"`
}

func (t *BTerm) Kind() TermKind { return TermBTerm }
func (t *BTerm) TermID() int    { return t.ID }
func (t *BTerm) Name() string   { return t.Pin }
func (t *BTerm) Owner() string  { return t.NetN }
func (t *BTerm) Net() string    { return t.NetN }

func (t *BTerm) String() string {
	return fmt.Sprintf("bterm %d %s", t.ID, t.Pin)
}
