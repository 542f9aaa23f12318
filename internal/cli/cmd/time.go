package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mbellamy/vmips/internal/cli"
	"github.com/mbellamy/vmips/internal/config"
	"github.com/mbellamy/vmips/internal/decode"
	"github.com/mbellamy/vmips/internal/functional"
	"github.com/mbellamy/vmips/internal/ioformat"
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/log"
	"github.com/mbellamy/vmips/internal/timing"
	"github.com/mbellamy/vmips/internal/trace"
)

// Time builds the "time" sub-command, which drives the timing core: it
// replays Data.txt, the resolved trace, once per Config*.txt file found
// in the I/O directory (the original harness's batch mode, see
// SPEC_FULL.md's supplemented features), writing one OutputN.txt per
// config and appending a line to Summary.txt for each.
func Time() cli.Command {
	return &timer{log: log.DefaultLogger()}
}

type timer struct {
	logLevel slog.Level
	dir      string
	log      *log.Logger
}

func (timer) Description() string {
	return "replay a resolved trace through the timing core"
}

func (timer) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `time [-dir io-directory]

Replays Data.txt, the resolved trace produced by "run", against every
Config*.txt file in the I/O directory. Writes OutputN.txt per config (N is
the config's 1-based position) and appends one line per config to
Summary.txt.`)

	return err
}

func (t *timer) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("time", flag.ExitOnError)
	fs.StringVar(&t.dir, "dir", ".", "I/O `directory` holding Data.txt and Config*.txt")
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return t.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

func (t *timer) Run(ctx context.Context, _ []string, stdout io.Writer, logger *log.Logger) int {
	log.LogLevel.Set(t.logLevel)

	entries, err := t.loadTrace()
	if err != nil {
		logger.Error("Error loading Data.txt", "err", err)
		return 1
	}

	configs, err := filepath.Glob(filepath.Join(t.dir, "Config*.txt"))
	if err != nil || len(configs) == 0 {
		logger.Error("No Config*.txt files found", "dir", t.dir)
		return 1
	}

	sort.Strings(configs)

	summary, err := os.Create(filepath.Join(t.dir, "Summary.txt"))
	if err != nil {
		logger.Error("Error creating Summary.txt", "err", err)
		return 1
	}
	defer summary.Close()

	for i, path := range configs {
		cycles, elapsed, err := t.runOne(ctx, path, entries)
		if err != nil {
			logger.Error("Error running config", "config", path, "err", err)
			return 1
		}

		n := i + 1

		if err := t.writeOutput(n, cycles, elapsed); err != nil {
			logger.Error("Error writing OutputN.txt", "n", n, "err", err)
			return 1
		}

		if err := ioformat.AppendSummary(summary, n, cycles); err != nil {
			logger.Error("Error appending to Summary.txt", "err", err)
			return 1
		}
	}

	fmt.Fprintln(stdout, "OK")

	return 0
}

// loadTrace reads Data.txt with trace.Read, which rejects a line with no
// address tuple, an unknown mnemonic or an unparsable operand, and then
// checks that each entry's opcode has an entry in the signature table the
// functional decoder uses. Operand counts and kinds are not checked
// against that signature.
func (t *timer) loadTrace() ([]trace.Entry, error) {
	f, err := os.Open(filepath.Join(t.dir, "Data.txt"))
	if err != nil {
		return nil, &functional.IOError{File: "Data.txt", Err: err}
	}
	defer f.Close()

	entries, err := trace.Read(f)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if _, ok := isa.SignatureFor(e.In.Op); !ok {
			return nil, &decode.DecodeError{PC: e.In.PC, Line: e.In.String(), Msg: "unknown opcode in resolved trace"}
		}
	}

	return entries, nil
}

func (t *timer) runOne(ctx context.Context, configPath string, entries []trace.Entry) (uint64, time.Duration, error) {
	cfgFile, err := os.Open(configPath)
	if err != nil {
		return 0, 0, &functional.IOError{File: filepath.Base(configPath), Err: err}
	}
	defer cfgFile.Close()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return 0, 0, err
	}

	driver := timing.NewDriver(entries, cfg)

	start := time.Now()
	cycles, err := driver.Run(ctx)
	elapsed := time.Since(start)

	return cycles, elapsed, err
}

func (t *timer) writeOutput(n int, cycles uint64, elapsed time.Duration) error {
	f, err := os.Create(filepath.Join(t.dir, fmt.Sprintf("Output%d.txt", n)))
	if err != nil {
		return err
	}
	defer f.Close()

	return ioformat.WriteOutput(f, cycles, elapsed)
}
