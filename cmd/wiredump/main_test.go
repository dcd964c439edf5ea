package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/wire-codec/stream"
)

const catalogJSON = `{
  "layers": [
    {"id": 3, "name": "metal3", "width": 140, "direction": "horizontal"},
    {"id": 4, "name": "metal4", "width": 200, "direction": "vertical"}
  ],
  "vias": [{"id": 7, "name": "via34", "bottom": 3, "top": 4, "bbox": [-70, -70, 70, 70]}],
  "iterms": [{"id": 4, "inst": "u1", "name": "A", "net": "n1"}]
}`

const wireText = `
	path 3
	x 0
	y 0
	iterm 4
	x 500
	via.top 7
	y 300
	jct 4
	colinear 0
	x 900
`

type fixture struct {
	dir     string
	catalog string
	wire    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		catalog: filepath.Join(dir, "tech.json"),
		wire:    filepath.Join(dir, "net.wire"),
	}
	if err := os.WriteFile(f.catalog, []byte(catalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.wire, []byte(wireText), 0o644); err != nil {
		t.Fatal(err)
	}
	return f
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "", "dump", f.wire)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if diff := cmp.Diff(stream.FormatString(stream.MustParse(wireText)), out); diff != "" {
		t.Errorf("dump (-want +got):\n%s", diff)
	}

	out, err = run(t, "", "dump", "--instructions", f.wire)
	if err != nil {
		t.Fatalf("dump --instructions: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 9 {
		t.Errorf("instructions = %d, want 9\n%s", got, out)
	}
}

func TestDumpReadsStdin(t *testing.T) {
	out, err := run(t, "path 3\nx 0\ny 0\n", "dump")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, "path 3") {
		t.Errorf("output = %q", out)
	}
}

func TestShapes(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "", "shapes", "--catalog", f.catalog, f.wire)
	if err != nil {
		t.Fatalf("shapes: %v", err)
	}
	if !strings.Contains(out, "4 shapes, length 1200") {
		t.Errorf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "via via34") {
		t.Errorf("via shape missing:\n%s", out)
	}
}

func TestPaths(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "", "paths", "--catalog", f.catalog, f.wire)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	for _, want := range []string{
		"path 0: path at (0 0) on metal3 iterm 4 u1/A",
		"path 1: branch from 4 at (500 0) on metal3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "iterm iterm") {
		t.Errorf("terminal kind printed twice:\n%s", out)
	}
}

func TestGraph(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "", "graph", "--catalog", f.catalog, f.wire)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.HasPrefix(out, "5 nodes, 4 edges, 1 roots") {
		t.Errorf("header:\n%s", out)
	}
	for _, want := range []string{
		"n1.1 (0 0) metal3 iterm 4 u1/A\n",
		"e2.1 via n2.1 -> n3.1 via34\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRoundtrip(t *testing.T) {
	f := newFixture(t)
	outFile := filepath.Join(f.dir, "out.bin")
	out, err := run(t, "", "roundtrip", "--catalog", f.catalog, "-o", outFile, "--output-format", "binary", f.wire)
	if err != nil {
		t.Fatalf("roundtrip: %v\n%s", err, out)
	}
	for _, want := range []string{"nodes  5 -> 5", "edges  4 -> 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var s stream.Stream
	if err := s.UnmarshalBinary(data); err != nil {
		t.Fatalf("written stream: %v", err)
	}
	if err := stream.Validate(s); err != nil {
		t.Errorf("written stream invalid: %v", err)
	}
}

func TestAsm(t *testing.T) {
	f := newFixture(t)
	bin := filepath.Join(f.dir, "net.bin")
	if _, err := run(t, "", "asm", "-o", bin, f.wire); err != nil {
		t.Fatalf("asm to binary: %v", err)
	}
	out, err := run(t, "", "asm", "--format", "binary", bin)
	if err != nil {
		t.Fatalf("asm to text: %v", err)
	}
	if diff := cmp.Diff(stream.FormatString(stream.MustParse(wireText)), out); diff != "" {
		t.Errorf("text form (-want +got):\n%s", diff)
	}
}

func TestConfiguration(t *testing.T) {
	f := newFixture(t)

	t.Run("environment", func(t *testing.T) {
		t.Setenv("WIREDUMP_CATALOG", f.catalog)
		if _, err := run(t, "", "graph", f.wire); err != nil {
			t.Errorf("graph: %v", err)
		}
	})

	t.Run("config file", func(t *testing.T) {
		cfg := filepath.Join(f.dir, "wiredump.yaml")
		if err := os.WriteFile(cfg, []byte("catalog: "+f.catalog+"\nlog-level: debug\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, "", "graph", "--config", cfg, f.wire); err != nil {
			t.Errorf("graph: %v", err)
		}
	})
}

func TestCommandErrors(t *testing.T) {
	f := newFixture(t)
	bad := filepath.Join(f.dir, "bad.wire")
	if err := os.WriteFile(bad, []byte("path 3\nvia 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
		args []string
	}{
		{"no catalog", "no catalog", []string{"shapes", f.wire}},
		{"unknown format", "unknown format", []string{"dump", "--format", "hex", f.wire}},
		{"bad log level", "log level", []string{"dump", "--log-level", "loud", f.wire}},
		{"missing file", "read wire", []string{"dump", filepath.Join(f.dir, "none")}},
		{"binary garbage", "magic", []string{"dump", "--format", "binary", f.wire}},
		{"malformed wire", "missing_point", []string{"graph", "--catalog", f.catalog, bad}},
		{"unknown output format", "unknown output format", []string{"roundtrip", "--catalog", f.catalog, "-o", filepath.Join(f.dir, "x"), "--output-format", "hex", f.wire}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
