package graph_test

import (
	"testing"

	"github.com/wippyai/wire-codec/graph"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	graph.SetLogger(zap.New(core))
	t.Cleanup(func() { graph.SetLogger(nil) })

	g := decodeText(viaWire)
	graph.Encode(g)

	decoded := logs.FilterMessage("decoded wire").All()
	if len(decoded) != 1 {
		t.Fatalf("decoded wire entries = %d, want 1", len(decoded))
	}
	if got := decoded[0].ContextMap()["nodes"]; got != int64(4) {
		t.Errorf("nodes field = %v, want 4", got)
	}
	if logs.FilterMessage("encoded wire").Len() != 1 {
		t.Errorf("encoded wire not logged")
	}

	graph.SetLogger(nil)
	if graph.Logger() == nil {
		t.Fatal("Logger() is nil after SetLogger(nil)")
	}
}
