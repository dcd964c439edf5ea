package tech

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
)

// Catalog resolves the integer ids stored in an opcode stream.
type Catalog interface {
	Layer(id int) (*Layer, bool)
	Via(id int) (*Via, bool)
	TechVia(id int) (*Via, bool)
	Rule(id int, block bool) (*Rule, bool)
	ITerm(id int) (*ITerm, bool)
	BTerm(id int) (*BTerm, bool)
}

// Memory is a map-backed Catalog. It is safe for concurrent reads once
// populated.
type Memory struct {
	layers     map[int]*Layer
	vias       map[int]*Via
	techVias   map[int]*Via
	rules      map[int]*Rule
	blockRules map[int]*Rule
	iterms     map[int]*ITerm
	bterms     map[int]*BTerm
}

// NewMemory creates an empty catalog.
func NewMemory() *Memory {
	return &Memory{
		layers:     make(map[int]*Layer),
		vias:       make(map[int]*Via),
		techVias:   make(map[int]*Via),
		rules:      make(map[int]*Rule),
		blockRules: make(map[int]*Rule),
		iterms:     make(map[int]*ITerm),
		bterms:     make(map[int]*BTerm),
	}
}

// AddLayer registers a routing layer.
func (m *Memory) AddLayer(id int, name string, width int, dir Direction) *Layer {
	l := &Layer{ID: id, Name: name, Width: width, Direction: dir}
	m.layers[id] = l
	return l
}

// AddVia registers a block via between two layers.
func (m *Memory) AddVia(id int, name string, bottom, top int, bbox geom.Rect) *Via {
	v := &Via{ID: id, Name: name, Bottom: bottom, Top: top, BBox: bbox}
	m.vias[id] = v
	return v
}

// AddTechVia registers a technology via between two layers.
func (m *Memory) AddTechVia(id int, name string, bottom, top int, bbox geom.Rect) *Via {
	v := &Via{ID: id, Name: name, Bottom: bottom, Top: top, BBox: bbox, Tech: true}
	m.techVias[id] = v
	return v
}

// AddRule registers a technology-scope non-default rule.
func (m *Memory) AddRule(id int, name string, layer, width int) *Rule {
	r := &Rule{ID: id, Name: name, Layer: layer, Width: width}
	m.rules[id] = r
	return r
}

// AddBlockRule registers a block-scope non-default rule.
func (m *Memory) AddBlockRule(id int, name string, layer, width int) *Rule {
	r := &Rule{ID: id, Name: name, Layer: layer, Width: width, Block: true}
	m.blockRules[id] = r
	return r
}

// AddITerm registers an instance terminal.
func (m *Memory) AddITerm(id int, inst, pin, net string) *ITerm {
	t := &ITerm{ID: id, Inst: inst, Pin: pin, NetN: net}
	m.iterms[id] = t
	return t
}

// AddBTerm registers a block terminal.
func (m *Memory) AddBTerm(id int, pin, net string) *BTerm {
	t := &BTerm{ID: id, Pin: pin, NetN: net}
	m.bterms[id] = t
	return t
}

func (m *Memory) Layer(id int) (*Layer, bool) {
	l, ok := m.layers[id]
	return l, ok
}

func (m *Memory) Via(id int) (*Via, bool) {
	v, ok := m.vias[id]
	return v, ok
}

func (m *Memory) TechVia(id int) (*Via, bool) {
	v, ok := m.techVias[id]
	return v, ok
}

func (m *Memory) Rule(id int, block bool) (*Rule, bool) {
	var r *Rule
	var ok bool
	if block {
		r, ok = m.blockRules[id]
	} else {
		r, ok = m.rules[id]
	}
	return r, ok
}

func (m *Memory) ITerm(id int) (*ITerm, bool) {
	t, ok := m.iterms[id]
	return t, ok
}

func (m *Memory) BTerm(id int) (*BTerm, bool) {
	t, ok := m.bterms[id]
	return t, ok
}

// The Must helpers back the decoders: an id the catalog cannot resolve means
// the stream and the database disagree, which is a corrupted database.

// MustLayer resolves a layer or panics.
func MustLayer(c Catalog, id int) *Layer {
	l, ok := c.Layer(id)
	if !ok {
		panic(errors.NotFound(errors.PhaseDecode, "layer", id))
	}
	return l
}

// MustVia resolves a block via (or a tech via when tech is set) or panics.
func MustVia(c Catalog, id int, tech bool) *Via {
	var v *Via
	var ok bool
	if tech {
		v, ok = c.TechVia(id)
	} else {
		v, ok = c.Via(id)
	}
	if !ok {
		what := "via"
		if tech {
			what = "tech via"
		}
		panic(errors.NotFound(errors.PhaseDecode, what, id))
	}
	return v
}

// MustRule resolves a rule or panics.
func MustRule(c Catalog, id int, block bool) *Rule {
	r, ok := c.Rule(id, block)
	if !ok {
		what := "rule"
		if block {
			what = "block rule"
		}
		panic(errors.NotFound(errors.PhaseDecode, what, id))
	}
	return r
}

// MustITerm resolves an instance terminal or panics.
func MustITerm(c Catalog, id int) *ITerm {
	t, ok := c.ITerm(id)
	if !ok {
		panic(errors.NotFound(errors.PhaseDecode, "iterm", id))
	}
	return t
}

// MustBTerm resolves a block terminal or panics.
func MustBTerm(c Catalog, id int) *BTerm {
	t, ok := c.BTerm(id)
	if !ok {
		panic(errors.NotFound(errors.PhaseDecode, "bterm", id))
	}
	return t
}
