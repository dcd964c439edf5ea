package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// input names the wire file of a command, "-" meaning stdin.
func input(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readWire loads the stream named by the command arguments in the
// configured format.
func (a *app) readWire(cmd *cobra.Command, args []string) (stream.Stream, error) {
	name := input(args)
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return stream.Stream{}, fmt.Errorf("read wire: %w", err)
	}
	return a.parseWire(name, data)
}

func (a *app) parseWire(name string, data []byte) (stream.Stream, error) {
	var s stream.Stream
	switch a.v.GetString("format") {
	case formatBinary:
		if err := s.UnmarshalBinary(data); err != nil {
			return stream.Stream{}, fmt.Errorf("%s: %w", name, err)
		}
	default:
		var err error
		if s, err = stream.Parse(bytes.NewReader(data)); err != nil {
			return stream.Stream{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	a.log.Debug("wire loaded", zap.String("file", name), zap.Int("slots", s.Len()))
	return s, nil
}

// catalog loads the technology catalog named by --catalog.
func (a *app) catalog() (tech.Catalog, error) {
	path := a.v.GetString("catalog")
	if path == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "no catalog given (--catalog or WIREDUMP_CATALOG)")
	}
	cat, err := tech.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("catalog loaded", zap.String("file", path))
	return cat, nil
}

// load reads both the wire and the catalog.
func (a *app) load(cmd *cobra.Command, args []string) (stream.Stream, tech.Catalog, error) {
	cat, err := a.catalog()
	if err != nil {
		return stream.Stream{}, nil, err
	}
	s, err := a.readWire(cmd, args)
	if err != nil {
		return stream.Stream{}, nil, err
	}
	return s, cat, nil
}

// writeWire writes s to path, or to the command output when path is empty.
func writeWire(cmd *cobra.Command, path, format string, s stream.Stream) error {
	var data []byte
	switch format {
	case formatBinary:
		b, err := s.MarshalBinary()
		if err != nil {
			return err
		}
		data = b
	case formatText:
		data = []byte(stream.FormatString(s))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
