package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/wire-codec/graph"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
)

const (
	formatText   = "text"
	formatBinary = "binary"
)

// app carries the settings shared by every subcommand.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "wiredump",
		Short: "Inspect and convert wire opcode streams",
		Long: `wiredump reads the opcode stream of one net's wire and prints it as
instructions, shapes, paths or a graph. It converts between the text and
binary forms and checks that a wire survives a decode and encode round trip.

Input is a file path or "-" for stdin. The text form lists one slot per line;
the binary form starts with the WIRE magic.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("catalog", "", "JSON technology catalog")
	flags.String("format", formatText, "input wire format: text|binary")
	flags.String("log-level", "warn", "log level: debug|info|warn|error")
	flags.String("config", "", "config file (yaml, toml or json)")

	dumpCmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the stream slot by slot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runDump,
	}
	dumpCmd.Flags().Bool("instructions", false, "group slots into decoded instructions")

	shapesCmd := &cobra.Command{
		Use:   "shapes [file]",
		Short: "Print every shape the wire draws",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runShapes,
	}

	pathsCmd := &cobra.Command{
		Use:   "paths [file]",
		Short: "Print the wire path by path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runPaths,
	}

	graphCmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Print the nodes and edges of the decoded graph",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runGraph,
	}

	roundtripCmd := &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Decode the wire to a graph, encode it again and compare",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runRoundtrip,
	}
	roundtripCmd.Flags().StringP("output", "o", "", "write the re-encoded stream to this file")
	roundtripCmd.Flags().String("output-format", formatText, "output format: text|binary")

	asmCmd := &cobra.Command{
		Use:   "asm [file]",
		Short: "Convert between the text and binary forms",
		Long: `asm converts a text stream to the binary form and a binary stream to the
text form. The input form is taken from --format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runAsm,
	}
	asmCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	browseCmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse the instructions and shapes interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runBrowse,
	}

	rootCmd.AddCommand(
		dumpCmd,
		shapesCmd,
		pathsCmd,
		graphCmd,
		roundtripCmd,
		asmCmd,
		browseCmd,
	)
	return rootCmd
}

// setup binds flags, environment and the optional config file, then builds
// the logger and hands it to the library packages.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix("WIREDUMP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if cfg := a.v.GetString("config"); cfg != "" {
		a.v.SetConfigFile(cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	switch f := a.v.GetString("format"); f {
	case formatText, formatBinary:
	default:
		return fmt.Errorf("unknown format %q", f)
	}

	log, err := newLogger(a.v.GetString("log-level"), os.Stderr)
	if err != nil {
		return err
	}
	a.log = log
	stream.SetLogger(log)
	shape.SetLogger(log)
	graph.SetLogger(log)
	return nil
}

// newLogger writes human-readable entries to a terminal and JSON otherwise.
func newLogger(level string, out *os.File) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if term.IsTerminal(int(out.Fd())) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(out), lvl)), nil
}
