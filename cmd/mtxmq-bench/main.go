// Copyright ©2024 The MTXMQ Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mtxmq-bench checks the optimized contraction kernel against the
// reference over the full dimension grid and then prints its throughput
// over the standard shape suites. With no flags it reproduces the
// reference run: seed 76521, 30 trials, 16-byte buffers.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LynnColeArt/mtxmq"
	"github.com/LynnColeArt/mtxmq/blasref"
	"github.com/LynnColeArt/mtxmq/cycles"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mtxmq-bench",
		Short:         "Validate and benchmark the mTxmq kernel",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			code, err := run(cfg, os.Stdout, log.New(os.Stderr, "mtxmq: ", 0))
			if code != 0 {
				os.Exit(code)
			}
			return err
		},
	}

	cmd.Version, _ = mtxmq.Version()
	if cmd.Version == "" {
		cmd.Version = "(devel)"
	}

	kinds := make([]string, 0, len(cycles.Kinds()))
	for _, k := range cycles.Kinds() {
		kinds = append(kinds, string(k))
	}

	flags := cmd.PersistentFlags()
	flags.Uint64("seed", mtxmq.DefaultSeed, "seed of the input generator")
	flags.Int("trials", mtxmq.DefaultTrials, "timed trials per benchmark case, best wins")
	flags.Float64("tol", mtxmq.DefaultTolerance().AbsTol, "absolute tolerance of the correctness sweep")
	flags.Int("align", mtxmq.DefaultAlignment, "buffer alignment in bytes")
	flags.String("timer", string(cycles.Auto), "cycle counter ("+strings.Join(kinds, ", ")+")")
	flags.StringSlice("alt", nil, "alternate implementations to time ("+strings.Join(blasref.Names(), ", ")+")")
	flags.Bool("verify-alternates", false, "also check the alternates in the correctness sweep")
	flags.Bool("collect-all", false, "sweep the whole grid and report every failing triple")
	flags.String("report", "", "write a JSON log of every measurement to this file")
	flags.Bool("skip-bench", false, "stop after the correctness sweep")
	flags.BoolP("verbose", "v", false, "if set, increase verbosity level")
	return cmd
}

func configFromFlags(cmd *cobra.Command) (mtxmq.Config, error) {
	flags := cmd.PersistentFlags()
	cfg := mtxmq.DefaultConfig()

	cfg.Seed, _ = flags.GetUint64("seed")
	cfg.Trials, _ = flags.GetInt("trials")
	cfg.Alignment, _ = flags.GetInt("align")
	cfg.Alternates, _ = flags.GetStringSlice("alt")
	cfg.VerifyAlternates, _ = flags.GetBool("verify-alternates")
	cfg.SkipBench, _ = flags.GetBool("skip-bench")
	cfg.ReportPath, _ = flags.GetString("report")
	cfg.Verbose, _ = flags.GetBool("verbose")

	if flags.Changed("tol") {
		cfg.Tolerance.AbsTol, _ = flags.GetFloat64("tol")
	}
	if collect, _ := flags.GetBool("collect-all"); collect {
		cfg.Mode = mtxmq.CollectAll
	}

	timer, _ := flags.GetString("timer")
	kind, err := cycles.ParseKind(timer)
	if err != nil {
		return cfg, err
	}
	cfg.Timer = kind

	return cfg, cfg.Validate()
}

// run executes the harness and returns the process exit status. A failed
// sweep prints one line per failing triple to out and yields 1; any other
// error is returned with status 0 so cobra reports it.
func run(cfg mtxmq.Config, out io.Writer, logger *log.Logger) (int, error) {
	res, err := mtxmq.NewDriver(cfg, out, logger).Run()
	if err != nil && res != nil && res.Sweep != nil && !res.Sweep.OK() {
		printFailures(out, res)
		if cfg.Verbose {
			logger.Print(err)
		}
		return 1, nil
	}
	return 0, err
}

func printFailures(w io.Writer, res *mtxmq.Result) {
	if res == nil || res.Sweep == nil {
		return
	}
	for _, m := range res.Sweep.Failures {
		fmt.Fprintf(w, "test_mtxmq: error %d %d %d %e\n", m.Triple.NI, m.Triple.NJ, m.Triple.NK, m.AbsError)
	}
}

func main() {
	if err := newCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
