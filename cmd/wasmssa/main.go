// Command wasmssa is the CLI boundary of spec.md §6.3: load and translate
// a single Wasm binary, optionally dumping its IR, then exit.
//
// Grounded on tetratelabs/wazero's own cmd/wazero/wazero.go: standard
// library flag, a single flag.NewFlagSet (this CLI has one command, so
// wazero's per-subcommand split is unneeded), and a testable
// doMain(stdout, stderr io.Writer, args []string) int wrapped by os.Exit in
// main.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spidir/wasmssa/api"
	"github.com/spidir/wasmssa/internal/logging"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr, os.Args[1:]))
}

// doMain is separated from main for unit testing (mirrors wazero's own
// split of doMain from main).
func doMain(stdout, stderr io.Writer, args []string) int {
	flags := flag.NewFlagSet("wasmssa", flag.ContinueOnError)
	flags.SetOutput(stderr)

	modulePath := flags.String("module", "", "path to a .wasm file (required)")
	optimize := flags.Bool("optimize", false, "enable code-generator optimizations")
	logLevel := flags.Int("log-level", int(logging.LevelError), "verbosity 0 (silent) .. 5 (trace)")
	irDump := flags.String("ir-dump", "", "dump produced IR to a file, or - for stdout")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *modulePath == "" {
		fmt.Fprintln(stderr, "missing required -module flag")
		flags.Usage()
		return 1
	}

	log := logging.New(logging.Level(*logLevel))
	defer log.Sync() //nolint:errcheck

	data, err := os.ReadFile(*modulePath)
	if err != nil {
		fmt.Fprintf(stderr, "reading %s: %v\n", *modulePath, err)
		return 1
	}

	cfg := api.NewConfig().WithOptimize(*optimize)
	if *irDump != "" {
		sink, closeSink, err := openIRDump(*irDump, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "opening -ir-dump target: %v\n", err)
			return 1
		}
		defer closeSink()
		cfg = cfg.WithIRDumpSink(sink)
	}

	engine := api.NewEngine(cfg).WithLogger(log)
	defer engine.Close()
	store := api.NewStore(engine)
	defer store.Close()

	mod, err := api.NewModule(store, data)
	if err != nil {
		fmt.Fprintf(stderr, "translating %s: %v\n", *modulePath, err)
		return 1
	}
	defer mod.Close()

	fmt.Fprintf(stdout, "translated %d function(s) from %s\n", mod.NumFunctions(), *modulePath)
	return 0
}

// openIRDump resolves the -ir-dump flag's path|- argument into an
// api.IRDumpSink and a cleanup func, per spec.md §6.3.
func openIRDump(target string, stdout io.Writer) (api.IRDumpSink, func(), error) {
	if target == "-" {
		return func(data []byte) bool {
			_, _ = stdout.Write(data)
			return true
		}, func() {}, nil
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, nil, err
	}
	sink := func(data []byte) bool {
		_, _ = f.Write(data)
		return true
	}
	return sink, func() { _ = f.Close() }, nil
}
