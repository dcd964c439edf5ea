package shape_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

const maskedWire = `
	 0 path 3
	 1 color 2
	 2 x 0
	 3 y 0
	 4 x 500
	 5 viacolor 27
	 6 via.top 7
	 7 color 1
	 8 y 300
	 9 path 3
	10 x 0
	11 y 0
	12 y 100
	13 color 0
	14 rect -5
	15 operand -5
	16 operand 5
	17 operand 5
`

type mask struct {
	ID       int
	Color    int
	ViaColor stream.ViaColor
}

func masks(shapes []shape.Shape) []mask {
	out := make([]mask, len(shapes))
	for i, s := range shapes {
		out[i] = mask{s.ID, s.Color, s.ViaColor}
	}
	return out
}

func TestIteratorMasks(t *testing.T) {
	got := decode(t, maskedWire)
	want := []mask{
		{ID: 4, Color: 2},
		{ID: 6, Color: 2, ViaColor: stream.ViaColor{Bottom: 1, Cut: 2, Top: 3}},
		{ID: 8, Color: 1, ViaColor: stream.ViaColor{}},
		{ID: 12, Color: 1},
		{ID: 14},
	}
	if diff := cmp.Diff(want, masks(got)); diff != "" {
		t.Errorf("masks (-want +got):\n%s", diff)
	}
	if s := got[1].String(); !strings.HasSuffix(s, " vmask=1/2/3 mask=2") {
		t.Errorf("via shape = %q", s)
	}
	if s := got[4].String(); strings.Contains(s, "mask") {
		t.Errorf("unmasked rect = %q", s)
	}

	it := shape.NewIterator(testCatalog())
	it.Begin(stream.MustParse(maskedWire))
	it.Next()
	it.Begin(stream.MustParse(viaWire))
	for sh, ok := it.Next(); ok; sh, ok = it.Next() {
		if sh.Color != 0 || !sh.ViaColor.IsZero() {
			t.Errorf("mask leaked across Begin: %v", sh)
		}
	}
}

func TestPathIteratorMaskBeforeFirstPoint(t *testing.T) {
	it := shape.NewPathIterator(testCatalog())
	it.Begin(stream.MustParse("path 3\ncolor 2\nrule 2\nx 0\ny 0\niterm 4\nx 100"))

	p, ok := it.NextPath()
	if !ok {
		t.Fatal("no path")
	}
	if p.Point != geom.Pt(0, 0) || p.Junction != 3 || p.Rule == nil || p.ITerm == nil {
		t.Errorf("path = %+v", p)
	}
	ps, ok := it.NextShape()
	if !ok || ps.Shape.Color != 2 || ps.Shape.HalfWidth != 200 {
		t.Errorf("shape = %v", ps.Shape)
	}
}

const viaChainWire = `
	0 path 3
	1 x 0
	2 y 0
	3 x 500
	4 via.top 7
	5 color 1
	6 colinear.ext 40
	7 y 300
	8 techvia 1
	9 x 800
`

func TestViaNeighbours(t *testing.T) {
	s := stream.MustParse(viaChainWire)
	cat := testCatalog()

	tests := []struct {
		name string
		find func(stream.Stream, int, tech.Catalog) (shape.Shape, bool)
		jid  int
		via  string
		at   geom.Point
	}{
		{"prev across extended colinear", shape.PrevVia, 7, "via34", geom.Pt(500, 0)},
		{"prev tech via", shape.PrevVia, 9, "V34", geom.Pt(500, 300)},
		{"prev after a point", shape.PrevVia, 3, "", geom.Point{}},
		{"prev out of range", shape.PrevVia, 0, "", geom.Point{}},
		{"next via", shape.NextVia, 3, "via34", geom.Pt(500, 0)},
		{"next tech via", shape.NextVia, 7, "V34", geom.Pt(500, 300)},
		{"next stops at a point", shape.NextVia, 4, "", geom.Point{}},
		{"next at the end", shape.NextVia, 9, "", geom.Point{}},
		{"next out of range", shape.NextVia, 99, "", geom.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, ok := tt.find(s, tt.jid, cat)
			if ok != (tt.via != "") {
				t.Fatalf("found = %v (%v)", ok, sh)
			}
			if ok && (sh.Via.Name != tt.via || sh.From != tt.at || !sh.IsVia()) {
				t.Errorf("via = %v, want %s at %v", sh, tt.via, tt.at)
			}
		})
	}
}

func TestViaBoxes(t *testing.T) {
	s := stream.MustParse(viaChainWire)
	cat := testCatalog()
	tech.MustVia(cat, 7, false).
		AddBox(3, geom.NewRect(-70, -70, 70, 70)).
		AddBox(100, geom.NewRect(-30, -30, 30, 30))

	boxes, ok := shape.ViaBoxes(s, 4, cat)
	if !ok {
		t.Fatal("slot 4 is not a via")
	}
	want := []tech.ViaBox{
		{Layer: 3, Box: geom.NewRect(430, -70, 570, 70)},
		{Layer: 100, Box: geom.NewRect(470, -30, 530, 30)},
	}
	if diff := cmp.Diff(want, boxes); diff != "" {
		t.Errorf("boxes (-want +got):\n%s", diff)
	}

	if boxes, ok := shape.ViaBoxes(s, 8, cat); !ok || len(boxes) != 0 {
		t.Errorf("tech via without boxes = %v, %v", boxes, ok)
	}
	if _, ok := shape.ViaBoxes(s, 3, cat); ok {
		t.Error("segment reported as a via")
	}
}
