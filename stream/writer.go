package stream

import (
	"fmt"

	"github.com/wippyai/wire-codec/errors"
)

// RuleRef names a non-default width rule. The zero value means the layer
// default; rule id 0 is reserved for it.
type RuleRef struct {
	ID    int
	Block bool
}

// NoRule selects the layer default width.
var NoRule = RuleRef{}

// IsZero reports whether r selects the layer default.
func (r RuleRef) IsZero() bool {
	return r.ID == 0
}

func (r RuleRef) opcode() byte {
	if r.Block {
		return OpRule | FlagBlockRule
	}
	return OpRule
}

// Writer appends instructions to a stream slot by slot. It picks X, Y or
// COLINEAR for each point by comparing it with the current one and hands
// back the junction id of every point and via it writes.
//
// Misuse (a point that is not axis-aligned with the current one, a via or
// terminal before any point, a junction that does not exist yet) panics
// with an *errors.Error.
type Writer struct {
	s           Stream
	x, y        int
	pointCnt    int
	viaCnt      int
	wireType    WireType
	rule        RuleRef
	extColinear bool
}

// NewWriter returns a writer over an empty stream.
func NewWriter() *Writer {
	return &Writer{}
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	*w = Writer{}
}

// Len returns the number of slots written.
func (w *Writer) Len() int {
	return w.s.Len()
}

// Stream returns the stream written so far.
func (w *Writer) Stream() Stream {
	return w.s
}

func (w *Writer) initPath(wt WireType, rule RuleRef) {
	if _, ok := wireTypeNames[wt]; !ok {
		panic(errors.Precondition(errors.PhaseEncode, "new path", fmt.Sprintf("invalid wire type 0x%02x", byte(wt))))
	}
	w.wireType = wt
	w.rule = rule
	w.pointCnt = 0
	w.viaCnt = 0
	w.extColinear = false
}

func (w *Writer) emitRule() {
	if !w.rule.IsZero() {
		w.s.push(w.rule.opcode(), w.rule.ID)
	}
}

// NewPath opens a path on layer.
func (w *Writer) NewPath(layer int, wt WireType, rule RuleRef) {
	w.initPath(wt, rule)
	w.s.push(OpPath|byte(wt), layer)
	w.emitRule()
}

// NewPathJunction opens a branch at an existing junction.
func (w *Writer) NewPathJunction(jct int, wt WireType, rule RuleRef) {
	w.newPathJunction(jct, wt, rule, 0, false)
}

// NewPathJunctionExt opens a branch at an existing junction whose first
// segment starts with an explicit extension.
func (w *Writer) NewPathJunctionExt(jct, ext int, wt WireType, rule RuleRef) {
	w.newPathJunction(jct, wt, rule, ext, true)
}

func (w *Writer) newPathJunction(jct int, wt WireType, rule RuleRef, ext int, hasExt bool) {
	w.checkJunction("new path junction", jct)
	p := Coord(w.s, jct)
	w.initPath(wt, rule)
	w.x, w.y = p.X, p.Y
	w.pointCnt = 1

	w.s.push(OpJunction|byte(wt), jct)
	w.emitRule()
	op := OpColinear | w.widthFlag()
	if hasExt {
		w.s.push(op|FlagExtension, ext)
		return
	}
	w.s.push(op, 0)
}

// NewPathShort opens a path on layer that is shorted to an existing
// junction.
func (w *Writer) NewPathShort(jct, layer int, wt WireType, rule RuleRef) {
	w.newPathLink(OpShort, jct, layer, wt, rule)
}

// NewPathVirtualWire opens a path on layer that is virtually connected to
// an existing junction.
func (w *Writer) NewPathVirtualWire(jct, layer int, wt WireType, rule RuleRef) {
	w.newPathLink(OpVWire, jct, layer, wt, rule)
}

func (w *Writer) newPathLink(code byte, jct, layer int, wt WireType, rule RuleRef) {
	w.checkJunction("new path "+OpName(code), jct)
	w.initPath(wt, rule)
	w.s.push(code|byte(wt), layer)
	w.s.push(OpOperand, jct)
	w.emitRule()
}

// AddPoint adds a point with the default extension and returns its
// junction id.
func (w *Writer) AddPoint(x, y int) int {
	jct := w.addPoint(x, y, 0, false)
	w.refreshRule()
	return jct
}

// AddPointExt adds a point with an explicit extension and returns its
// junction id.
func (w *Writer) AddPointExt(x, y, ext int) int {
	jct := w.addPoint(x, y, ext, true)
	w.refreshRule()
	return jct
}

// AddPointProperty adds a point followed by a PROPERTY slot holding prop
// and returns its junction id. The first point of a path and colinear
// points carry no property, so for them prop is dropped.
func (w *Writer) AddPointProperty(x, y, prop int) int {
	jct := w.addPoint(x, y, 0, false)
	if w.pointCnt > 1 && Code(w.s.Opcodes[jct]) != OpColinear {
		w.s.push(OpProperty, prop)
	}
	w.refreshRule()
	return jct
}

func (w *Writer) addPoint(x, y, ext int, hasExt bool) int {
	jct := w.s.Len()
	flags := w.widthFlag()
	extFlag := byte(0)
	if hasExt {
		extFlag = FlagExtension
	}
	colinearExt := false

	switch {
	case w.pointCnt == 0:
		w.s.push(OpX|flags, x)
		w.s.push(OpY|flags|extFlag, y)
		w.x, w.y = x, y
		w.pointCnt++
		jct++
	case x == w.x && y == w.y:
		if hasExt {
			if w.pointCnt < 2 && w.viaCnt == 0 {
				panic(errors.Precondition(errors.PhaseEncode, "add point", "extended colinear point needs a preceding segment or via"))
			}
			if w.extColinear {
				panic(errors.Precondition(errors.PhaseEncode, "add point", "consecutive extended colinear points"))
			}
			w.s.push(OpColinear|flags|FlagExtension, ext)
			colinearExt = true
			hasExt = false
		} else {
			w.s.push(OpColinear|flags, 0)
		}
	case y == w.y:
		w.s.push(OpX|flags|extFlag, x)
		w.x = x
		w.pointCnt++
	case x == w.x:
		w.s.push(OpY|flags|extFlag, y)
		w.y = y
		w.pointCnt++
	default:
		panic(errors.Precondition(errors.PhaseEncode, "add point",
			fmt.Sprintf("non-orthogonal segment (%d %d) to (%d %d)", w.x, w.y, x, y)))
	}

	if hasExt {
		w.s.push(OpOperand, ext)
	}
	w.extColinear = colinearExt
	return jct
}

// refreshRule repeats the RULE slot every RuleRefreshInterval points.
func (w *Writer) refreshRule() {
	if !w.rule.IsZero() && w.pointCnt%RuleRefreshInterval == 0 {
		w.emitRule()
	}
}

// AddVia adds a block via at the current point. exitTop selects the layer
// the path continues on.
func (w *Writer) AddVia(id int, exitTop bool) int {
	return w.addVia(OpVia, id, exitTop)
}

// AddTechVia adds a technology via at the current point.
func (w *Writer) AddTechVia(id int, exitTop bool) int {
	return w.addVia(OpTechVia, id, exitTop)
}

func (w *Writer) addVia(code byte, id int, exitTop bool) int {
	w.needPoint(OpName(code))
	if exitTop {
		code |= FlagExitTop
	}
	w.viaCnt++
	w.extColinear = false
	return w.s.push(code, id)
}

// SetColor sets the mask of the shapes that follow, from 1 to MaxMask. The
// mask holds until the next SetColor or ClearColor, across paths.
func (w *Writer) SetColor(mask int) {
	if mask < 1 || mask > MaxMask {
		panic(errors.Precondition(errors.PhaseEncode, "set color", fmt.Sprintf("mask %d outside 1..%d", mask, MaxMask)))
	}
	w.s.push(OpColor, mask)
}

// ClearColor drops the mask of the shapes that follow.
func (w *Writer) ClearColor() {
	w.s.push(OpColor, 0)
}

// SetViaColor sets the masks of the vias that follow. Each mask runs from 0
// to MaxMask; an all-zero color clears it.
func (w *Writer) SetViaColor(c ViaColor) {
	for _, m := range [...]int{c.Bottom, c.Cut, c.Top} {
		if m < 0 || m > MaxMask {
			panic(errors.Precondition(errors.PhaseEncode, "set via color", fmt.Sprintf("mask %d outside 0..%d", m, MaxMask)))
		}
	}
	w.s.push(OpViaColor, c.pack())
}

// ClearViaColor drops the via masks.
func (w *Writer) ClearViaColor() {
	w.s.push(OpViaColor, 0)
}

// AddRect adds a rectangle given by two corner offsets from the current
// point.
func (w *Writer) AddRect(dx1, dy1, dx2, dy2 int) {
	w.needPoint("rect")
	w.s.push(OpRect, dx1)
	w.s.push(OpOperand, dy1)
	w.s.push(OpOperand, dx2)
	w.s.push(OpOperand, dy2)
}

// AddITerm attaches an instance terminal to the current point.
func (w *Writer) AddITerm(id int) {
	w.needPoint("iterm")
	w.s.push(OpITerm, id)
}

// AddBTerm attaches a block terminal to the current point.
func (w *Writer) AddBTerm(id int) {
	w.needPoint("bterm")
	w.s.push(OpBTerm, id)
}

func (w *Writer) widthFlag() byte {
	if w.rule.IsZero() {
		return FlagDefaultWidth
	}
	return 0
}

func (w *Writer) needPoint(op string) {
	if w.pointCnt == 0 {
		panic(errors.MissingPoint(errors.PhaseEncode, w.s.Len(), op))
	}
}

func (w *Writer) checkJunction(op string, jct int) {
	if jct < 0 || jct >= w.s.Len() {
		panic(errors.Precondition(errors.PhaseEncode, op, fmt.Sprintf("junction %d not written yet", jct)))
	}
}
