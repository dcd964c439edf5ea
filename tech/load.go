package tech

import (
	"encoding/json"
	"io"
	"os"

	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
)

type catalogFile struct {
	Layers     []Layer   `json:"layers"`
	Vias       []viaFile `json:"vias"`
	TechVias   []viaFile `json:"tech_vias"`
	Rules      []Rule    `json:"rules"`
	BlockRules []Rule    `json:"block_rules"`
	ITerms     []ITerm   `json:"iterms"`
	BTerms     []BTerm   `json:"bterms"`
}

type viaFile struct {
	Name   string       `json:"name"`
	Boxes  []viaBoxFile `json:"boxes"`
	ID     int          `json:"id"`
	Top    int          `json:"top"`
	Bottom int          `json:"bottom"`
	BBox   [4]int       `json:"bbox"`
}

type viaBoxFile struct {
	Layer int    `json:"layer"`
	Rect  [4]int `json:"rect"`
}

// LoadJSON reads a catalog document:
//
//	{
//	  "layers":    [{"id": 1, "name": "metal1", "width": 140, "direction": "horizontal"}],
//	  "vias":      [{"id": 1, "name": "V12", "bottom": 1, "top": 2, "bbox": [-70, -70, 70, 70],
//	                 "boxes": [{"layer": 1, "rect": [-70, -70, 70, 70]}]}],
//	  "tech_vias": [...],
//	  "rules":     [{"id": 1, "name": "2W", "layer": 1, "width": 280}],
//	  "block_rules": [...],
//	  "iterms":    [{"id": 1, "inst": "u1", "name": "A", "net": "n1"}],
//	  "bterms":    [{"id": 1, "name": "in", "net": "n1"}]
//	}
func LoadJSON(r io.Reader) (*Memory, error) {
	var f catalogFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Load("decode catalog", err)
	}

	m := NewMemory()
	for _, l := range f.Layers {
		if _, dup := m.layers[l.ID]; dup {
			return nil, errors.Load("duplicate layer id", nil)
		}
		m.AddLayer(l.ID, l.Name, l.Width, l.Direction)
	}
	for _, v := range f.Vias {
		if err := checkViaLayers(m, v); err != nil {
			return nil, err
		}
		addBoxes(m.AddVia(v.ID, v.Name, v.Bottom, v.Top, bboxOf(v)), v)
	}
	for _, v := range f.TechVias {
		if err := checkViaLayers(m, v); err != nil {
			return nil, err
		}
		addBoxes(m.AddTechVia(v.ID, v.Name, v.Bottom, v.Top, bboxOf(v)), v)
	}
	for _, r := range f.Rules {
		m.AddRule(r.ID, r.Name, r.Layer, r.Width)
	}
	for _, r := range f.BlockRules {
		m.AddBlockRule(r.ID, r.Name, r.Layer, r.Width)
	}
	for _, t := range f.ITerms {
		m.AddITerm(t.ID, t.Inst, t.Pin, t.NetN)
	}
	for _, t := range f.BTerms {
		m.AddBTerm(t.ID, t.Pin, t.NetN)
	}
	return m, nil
}

// LoadFile reads a JSON catalog from path.
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open catalog "+path, err)
	}
	defer f.Close()
	return LoadJSON(f)
}

func checkViaLayers(m *Memory, v viaFile) error {
	if _, ok := m.layers[v.Top]; !ok {
		return errors.Load("via "+v.Name+" references unknown top layer", nil)
	}
	if _, ok := m.layers[v.Bottom]; !ok {
		return errors.Load("via "+v.Name+" references unknown bottom layer", nil)
	}
	return nil
}

func bboxOf(v viaFile) geom.Rect {
	return geom.NewRect(v.BBox[0], v.BBox[1], v.BBox[2], v.BBox[3])
}

func addBoxes(via *Via, v viaFile) {
	for _, b := range v.Boxes {
		via.AddBox(b.Layer, geom.NewRect(b.Rect[0], b.Rect[1], b.Rect[2], b.Rect[3]))
	}
}
