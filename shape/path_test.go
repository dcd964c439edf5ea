package shape_test

import (
	"testing"

	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
)

const branchedWire = `
	 0 path.routed 3
	 1 rule 2
	 2 x 0
	 3 y 0
	 4 bterm 9
	 5 iterm 4
	 6 x 100
	 7 via.top 7
	 8 y 200
	 9 iterm 5
	10 jct.fixed 6
	11 colinear.dw 0
	12 y.dw -100
	13 vwire 4
	14 operand 8
	15 x 300
	16 y 200
`

func TestPathIterator(t *testing.T) {
	it := shape.NewPathIterator(testCatalog())
	it.Begin(stream.MustParse(branchedWire))

	p, ok := it.NextPath()
	if !ok {
		t.Fatal("no first path")
	}
	if p.Junction != 3 || p.Point != geom.Pt(0, 0) || p.Layer.Name != "metal3" || p.Source != -1 {
		t.Errorf("first path = %+v", p)
	}
	if p.Rule == nil || p.Rule.Name != "2W" || p.WireType != stream.WireRouted {
		t.Errorf("first path rule/type = %v / %s", p.Rule, p.WireType)
	}
	if p.ITerm == nil || p.ITerm.ID != 4 || p.BTerm == nil || p.BTerm.ID != 9 {
		t.Errorf("first path terminals = %v / %v", p.ITerm, p.BTerm)
	}
	if p.IsBranch || p.IsShort || p.IsVirtual {
		t.Errorf("first path flags = %+v", p)
	}

	wantShapes := []struct {
		kind     shape.Kind
		id       int
		point    geom.Point
		layer    string
		hw       int
		iterm    int
		junction int
	}{
		{shape.KindSegment, 6, geom.Pt(100, 0), "metal3", 200, 0, 6},
		{shape.KindVia, 7, geom.Pt(100, 0), "metal4", 0, 0, 7},
		{shape.KindSegment, 8, geom.Pt(100, 200), "metal4", 200, 5, 8},
	}
	for i, want := range wantShapes {
		ps, ok := it.NextShape()
		if !ok {
			t.Fatalf("shape %d missing", i)
		}
		iterm := 0
		if ps.ITerm != nil {
			iterm = ps.ITerm.ID
		}
		if ps.Shape.Kind != want.kind || ps.Shape.ID != want.id || ps.Point != want.point ||
			ps.Layer.Name != want.layer || ps.Shape.HalfWidth != want.hw || iterm != want.iterm || ps.Junction != want.junction {
			t.Errorf("shape %d = %+v", i, ps)
		}
	}
	if _, ok := it.NextShape(); ok {
		t.Error("NextShape crossed into the branch")
	}

	p, ok = it.NextPath()
	if !ok || !p.IsBranch || p.Source != 6 || p.Junction != 11 || p.Point != geom.Pt(100, 0) {
		t.Fatalf("branch path = %+v", p)
	}
	if p.Layer.Name != "metal3" || p.WireType != stream.WireFixed || p.Rule != nil {
		t.Errorf("branch path layer/type/rule = %s / %s / %v", p.Layer.Name, p.WireType, p.Rule)
	}
	ps, ok := it.NextShape()
	if !ok || ps.Shape.From != geom.Pt(100, 0) || ps.Shape.To != geom.Pt(100, -100) || ps.Shape.HalfWidth != 70 {
		t.Errorf("branch shape = %+v", ps)
	}

	p, ok = it.NextPath()
	if !ok || !p.IsVirtual || p.Source != 8 || p.Junction != 16 || p.Point != geom.Pt(300, 200) || p.Layer.Name != "metal4" {
		t.Errorf("virtual wire path = %+v", p)
	}
	if _, ok := it.NextShape(); ok {
		t.Error("single point path has a shape")
	}
	if _, ok := it.NextPath(); ok {
		t.Error("path after end of stream")
	}
}

func TestPathIteratorSkipsUnreadShapes(t *testing.T) {
	it := shape.NewPathIterator(testCatalog())
	it.Begin(stream.MustParse(branchedWire))

	var branches, shorts int
	for p, ok := it.NextPath(); ok; p, ok = it.NextPath() {
		if p.IsBranch {
			branches++
		}
		if p.IsShort || p.IsVirtual {
			shorts++
		}
	}
	if branches != 1 || shorts != 1 {
		t.Errorf("branches=%d shorts=%d, want 1 and 1", branches, shorts)
	}
}

func TestPathIteratorTerminalOrder(t *testing.T) {
	for _, text := range []string{
		"path 3\nx 0\ny 0\niterm 4\nbterm 9\nx 50",
		"path 3\nx 0\ny 0\nbterm 9\niterm 4\nx 50",
	} {
		it := shape.NewPathIterator(testCatalog())
		it.Begin(stream.MustParse(text))
		p, _ := it.NextPath()
		if p.ITerm == nil || p.BTerm == nil {
			t.Errorf("%q: terminals = %v / %v", text, p.ITerm, p.BTerm)
		}
		if ps, ok := it.NextShape(); !ok || ps.Shape.ID != 5 {
			t.Errorf("%q: shape after terminals = %+v", text, ps)
		}
	}
}
