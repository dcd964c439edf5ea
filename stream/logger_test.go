package stream_test

import (
	"sync"
	"testing"

	"github.com/wippyai/wire-codec/stream"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	stream.SetLogger(zap.New(core))
	t.Cleanup(func() { stream.SetLogger(nil) })

	if err := stream.Validate(stream.MustParse(sampleWire)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := logs.FilterMessage("stream valid").Len(); got != 1 {
		t.Fatalf("stream valid entries = %d, want 1", got)
	}

	stream.SetLogger(nil)
	if stream.Logger() == nil {
		t.Fatal("Logger() is nil after SetLogger(nil)")
	}
	if err := stream.Validate(stream.MustParse(sampleWire)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if logs.Len() != 1 {
		t.Errorf("entries = %d after reset, want 1", logs.Len())
	}
}

func TestLoggerConcurrentUse(t *testing.T) {
	t.Cleanup(func() { stream.SetLogger(nil) })
	s := stream.MustParse(sampleWire)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				stream.SetLogger(zap.NewNop())
				return
			}
			if err := stream.Validate(s); err != nil {
				t.Errorf("Validate: %v", err)
			}
		}()
	}
	wg.Wait()
}
