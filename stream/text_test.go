package stream_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	wcerrors "github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/stream"
)

func TestMnemonic(t *testing.T) {
	tests := []struct {
		op   byte
		want string
	}{
		{stream.OpPath, "path"},
		{stream.OpPath | byte(stream.WireNoShield), "path.noshield"},
		{stream.OpJunction | byte(stream.WireFixed), "jct.fixed"},
		{stream.OpX | stream.FlagExtension | stream.FlagDefaultWidth, "x.ext.dw"},
		{stream.OpColinear | stream.FlagExtension, "colinear.ext"},
		{stream.OpTechVia | stream.FlagExitTop, "techvia.top"},
		{stream.OpRule | stream.FlagBlockRule, "rule.block"},
		{stream.OpITerm | 0x40, "iterm.0x40"},
		{stream.OpShort | 0xA0, "short.0xa0"},
		{20, "op20"},
	}
	for _, tt := range tests {
		if got := stream.Mnemonic(tt.op); got != tt.want {
			t.Errorf("Mnemonic(0x%02x) = %q, want %q", tt.op, got, tt.want)
		}
		back, err := stream.ParseMnemonic(tt.want)
		if err != nil {
			t.Errorf("ParseMnemonic(%q): %v", tt.want, err)
			continue
		}
		if back != tt.op {
			t.Errorf("ParseMnemonic(%q) = 0x%02x, want 0x%02x", tt.want, back, tt.op)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	s := stream.MustParse(sampleWire)
	text := stream.FormatString(s)
	back, err := stream.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(s, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestParseComments(t *testing.T) {
	s, err := stream.Parse(strings.NewReader(`
		# a two point wire
		path 1   # metal1

		x 0
		y 0
	`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("parsed %d slots, want 3", s.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"unknown mnemonic", "path 1\nwiggle 2", 2},
		{"flag not applicable", "via.ext 1", 1},
		{"bad hex flag", "path.0x01 1", 1},
		{"slot out of sequence", "0 path 1\n2 x 0", 2},
		{"bad operand", "path one", 1},
		{"operand overflow", "path 4294967296", 1},
		{"missing operand", "path", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stream.Parse(strings.NewReader(tt.text))
			var e *wcerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("got %v, want *errors.Error", err)
			}
			if e.Phase != wcerrors.PhaseParse || e.Value != tt.line {
				t.Errorf("got %v (line %v), want parse error on line %d", e, e.Value, tt.line)
			}
		})
	}
}
