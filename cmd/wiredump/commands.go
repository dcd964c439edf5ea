package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	wirecodec "github.com/wippyai/wire-codec"
	"github.com/wippyai/wire-codec/graph"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

func (a *app) runDump(cmd *cobra.Command, args []string) error {
	s, err := a.readWire(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	grouped, err := cmd.Flags().GetBool("instructions")
	if err != nil {
		return err
	}
	if !grouped {
		return stream.Format(out, s)
	}
	if err := stream.Validate(s); err != nil {
		return err
	}
	for _, in := range stream.Decode(s) {
		fmt.Fprintln(out, in)
	}
	return nil
}

func (a *app) runShapes(cmd *cobra.Command, args []string) error {
	s, cat, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	shapes, err := wirecodec.Shapes(s, cat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	length := 0
	for _, sh := range shapes {
		fmt.Fprintf(out, "%4d  %s\n", sh.ID, sh)
		length += sh.Length()
	}
	if box, ok := shape.BBox(s, cat); ok {
		fmt.Fprintf(out, "\n%d shapes, length %d, bbox %v\n", len(shapes), length, box)
	}
	return nil
}

func (a *app) runPaths(cmd *cobra.Command, args []string) error {
	s, cat, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	paths, err := wirecodec.Paths(s, cat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, p := range paths {
		fmt.Fprintf(out, "path %d: %s\n", i, describePath(p.Path))
		for _, ps := range p.Shapes {
			fmt.Fprintf(out, "  %4d  %s", ps.Shape.ID, ps.Shape)
			if ps.ITerm != nil {
				fmt.Fprintf(out, " %s", ps.ITerm)
			}
			if ps.BTerm != nil {
				fmt.Fprintf(out, " %s", ps.BTerm)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}

func describePath(p shape.Path) string {
	var b strings.Builder
	switch {
	case p.IsShort:
		fmt.Fprintf(&b, "short from %d", p.Source)
	case p.IsVirtual:
		fmt.Fprintf(&b, "vwire from %d", p.Source)
	case p.IsBranch:
		fmt.Fprintf(&b, "branch from %d", p.Source)
	default:
		b.WriteString("path")
	}
	fmt.Fprintf(&b, " at %v", p.Point)
	if p.Layer != nil {
		fmt.Fprintf(&b, " on %s", p.Layer.Name)
	}
	if p.WireType != stream.WireNone {
		fmt.Fprintf(&b, " %s", p.WireType)
	}
	if p.Rule != nil {
		fmt.Fprintf(&b, " rule %s", p.Rule.Name)
	}
	if p.ITerm != nil {
		fmt.Fprintf(&b, " %s", p.ITerm)
	}
	if p.BTerm != nil {
		fmt.Fprintf(&b, " %s", p.BTerm)
	}
	return b.String()
}

func (a *app) runGraph(cmd *cobra.Command, args []string) error {
	s, cat, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	g, err := wirecodec.Decode(s, cat)
	if err != nil {
		return err
	}
	printGraph(cmd.OutOrStdout(), g)
	return nil
}

func printGraph(out io.Writer, g *graph.Graph) {
	fmt.Fprintf(out, "%d nodes, %d edges, %d roots\n\n", g.NodeCount(), g.EdgeCount(), len(g.Roots()))
	for _, n := range g.Nodes() {
		fmt.Fprintf(out, "%s", n)
		for _, t := range n.Terminals() {
			fmt.Fprintf(out, " %s", t)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
	for _, e := range g.Edges() {
		fmt.Fprintln(out, describeEdge(g, e))
	}
}

func describeEdge(g *graph.Graph, e graph.Edge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s -> %s", e.ID(), e.Kind(), e.Source(), e.Target())
	switch v := e.(type) {
	case *graph.Segment:
		fmt.Fprintf(&b, " %s/%s", v.SourceStyle, v.TargetStyle)
		if n := g.Node(e.Source()); n != nil {
			fmt.Fprintf(&b, " on %s", n.Layer().Name)
		}
	case *graph.Via:
		fmt.Fprintf(&b, " %s", v.Master.Name)
	case *graph.TechVia:
		fmt.Fprintf(&b, " %s", v.Master.Name)
	}
	if wt := e.WireType(); wt != stream.WireNone {
		fmt.Fprintf(&b, " %s", wt)
	}
	if r := e.Rule(); r != nil {
		fmt.Fprintf(&b, " rule %s", r.Name)
	}
	return b.String()
}

func (a *app) runRoundtrip(cmd *cobra.Command, args []string) error {
	s, cat, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	g, err := wirecodec.Decode(s, cat)
	if err != nil {
		return err
	}
	encoded, err := wirecodec.Encode(g)
	if err != nil {
		return err
	}
	if err := stream.Validate(encoded); err != nil {
		return fmt.Errorf("re-encoded stream is invalid: %w", err)
	}
	back, err := wirecodec.Decode(encoded, cat)
	if err != nil {
		return fmt.Errorf("decode re-encoded stream: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "slots  %d -> %d\n", s.Len(), encoded.Len())
	fmt.Fprintf(out, "nodes  %d -> %d\n", g.NodeCount(), back.NodeCount())
	fmt.Fprintf(out, "edges  %d -> %d\n", g.EdgeCount(), back.EdgeCount())

	before, after := shapeList(s, cat), shapeList(encoded, cat)
	if diff := cmp.Diff(before, after); diff != "" {
		a.log.Info("shapes changed", zap.Int("before", len(before)), zap.Int("after", len(after)))
		fmt.Fprintf(out, "shapes differ (-before +after):\n%s", diff)
	} else {
		fmt.Fprintf(out, "shapes %d unchanged\n", len(before))
	}
	if g.NodeCount() != back.NodeCount() || g.EdgeCount() != back.EdgeCount() {
		return fmt.Errorf("graph changed in the round trip")
	}

	path, err := cmd.Flags().GetString("output")
	if err != nil || path == "" {
		return err
	}
	format, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return err
	}
	return writeWire(cmd, path, format, encoded)
}

// shapeList renders the shapes of s sorted, so that two streams drawing the
// same geometry in a different order compare equal. Shape ids are left out
// since they are slot numbers.
func shapeList(s stream.Stream, cat tech.Catalog) []string {
	shapes, err := wirecodec.Shapes(s, cat)
	if err != nil {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(shapes))
	for _, sh := range shapes {
		out = append(out, sh.String())
	}
	slices.Sort(out)
	return out
}

func (a *app) runAsm(cmd *cobra.Command, args []string) error {
	s, err := a.readWire(cmd, args)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	target := formatBinary
	if a.v.GetString("format") == formatBinary {
		target = formatText
	}
	return writeWire(cmd, path, target, s)
}
