package geom

import "testing"

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(10, 20, -5, 3)
	want := Rect{XMin: -5, YMin: 3, XMax: 10, YMax: 20}
	if r != want {
		t.Errorf("NewRect = %v, want %v", r, want)
	}
	if r.Width() != 15 || r.Height() != 17 {
		t.Errorf("size = %dx%d, want 15x17", r.Width(), r.Height())
	}
}

func TestMerge(t *testing.T) {
	acc := EmptyRect()
	if !acc.Empty() {
		t.Fatal("EmptyRect should be empty")
	}
	acc = acc.Merge(NewRect(0, 0, 10, 10))
	acc = acc.Merge(NewRect(-5, 2, 3, 40))
	want := Rect{XMin: -5, YMin: 0, XMax: 10, YMax: 40}
	if acc != want {
		t.Errorf("Merge = %v, want %v", acc, want)
	}
	if got := acc.Merge(EmptyRect()); got != want {
		t.Errorf("merging empty changed rect: %v", got)
	}
}

func TestTransformApply(t *testing.T) {
	p := Pt(3, 1)
	tests := []struct {
		orient Orient
		want   Point
	}{
		{R0, Pt(3, 1)},
		{R90, Pt(-1, 3)},
		{R180, Pt(-3, -1)},
		{R270, Pt(1, -3)},
		{MY, Pt(-3, 1)},
		{MX, Pt(3, -1)},
		{MXR90, Pt(1, 3)},
		{MYR90, Pt(-1, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.orient.String(), func(t *testing.T) {
			tr := Transform{Orient: tt.orient, Offset: Pt(100, 200)}
			got := tr.Apply(p)
			want := tt.want.Add(Pt(100, 200))
			if got != want {
				t.Errorf("Apply(%v) = %v, want %v", p, got, want)
			}
		})
	}
}

func TestParseOrient(t *testing.T) {
	o, ok := ParseOrient("MXR90")
	if !ok || o != MXR90 {
		t.Errorf("ParseOrient(MXR90) = %v, %v", o, ok)
	}
	if _, ok := ParseOrient("R45"); ok {
		t.Error("ParseOrient(R45) should fail")
	}
}
