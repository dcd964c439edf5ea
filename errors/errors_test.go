package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindMissingPoint,
				Slot:   7,
				HasPos: true,
				Op:     "ITERM",
				Detail: "no current point",
			},
			contains: []string{"[decode]", "missing_point", "at slot 7", "ITERM", "no current point"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseStream,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[stream]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "catalog",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "catalog", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoSlotWithoutPosition(t *testing.T) {
	err := &Error{Phase: PhaseGraph, Kind: KindPrecondition}
	if strings.Contains(err.Error(), "slot") {
		t.Errorf("unexpected slot in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseStream,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidOpcode,
		Slot:  3,
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidOpcode}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidOpcode}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindInvalidOpcode}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindMissingPoint).
		Slot(12).
		Op("VIA").
		Value(7).
		Cause(cause).
		Detail("via %d before %s", 7, "first point").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindMissingPoint {
		t.Errorf("Kind = %v, want %v", err.Kind, KindMissingPoint)
	}
	if !err.HasPos || err.Slot != 12 {
		t.Errorf("Slot = %v (HasPos %v), want 12", err.Slot, err.HasPos)
	}
	if err.Op != "VIA" {
		t.Errorf("Op = %v, want VIA", err.Op)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "via 7 before first point" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseStream, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("InvalidOpcode", func(t *testing.T) {
		err := InvalidOpcode(PhaseDecode, 4, 0x1f, "unknown")
		if err.Kind != KindInvalidOpcode || err.Slot != 4 || err.Op != "0x1f" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("TerminalConflict", func(t *testing.T) {
		err := TerminalConflict(PhaseDecode, "iterm 1", "iterm 2")
		if !strings.Contains(err.Detail, "iterm 1") || !strings.Contains(err.Detail, "iterm 2") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseDecode, "layer", 9)
		if err.Kind != KindNotFound || err.Value != 9 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseStream, int64(1)<<40, "int32")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed(3, "unknown mnemonic", nil)
		if err.Phase != PhaseParse || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("got %v", err)
		}
	})
}

func TestRecover(t *testing.T) {
	run := func(f func()) (err error) {
		defer Recover(&err)
		f()
		return nil
	}

	err := run(func() { Throw(PhaseGraph, KindPrecondition, "target %d busy", 4) })
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if e.Kind != KindPrecondition || e.Detail != "target 4 busy" {
		t.Errorf("got %+v", e)
	}

	if err := run(func() {}); err != nil {
		t.Errorf("no panic should give nil error, got %v", err)
	}

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("foreign panic should propagate, got %v", r)
		}
	}()
	_ = run(func() { panic("boom") })
}
