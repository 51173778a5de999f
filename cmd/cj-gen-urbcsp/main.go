// Command cj-gen-urbcsp prints a uniform random binary CSP as CSP-JSON.
//
// Usage:
//
//	cj-gen-urbcsp #vars #vals #constraints #nogoods seed #instances [#constraintDefs]
//	cj-gen-urbcsp --config runs.yaml
//
// Instances 0..#instances are generated from one random stream and only the
// last is printed. #constraintDefs defaults to #constraints.
//
// Exit status is 1 for usage errors, 2 when an instance cannot be generated.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/michal-dobrogost/csp-json/urbcsp"
)

const (
	exitUsage    = 1
	exitGenerate = 2
)

// exitError carries an exit status out of a cobra RunE. A nil err means the
// failure was already logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "cj-gen-urbcsp:", ee.err)
		}
		if ee.code == exitUsage {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "cj-gen-urbcsp:", err)
	fmt.Fprint(stderr, cmd.UsageString())
	return exitUsage
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		quiet      bool
	)
	cmd := &cobra.Command{
		Use:   "cj-gen-urbcsp #vars #vals #constraints #nogoods seed #instances [#constraintDefs]",
		Short: "Generate a uniform random binary CSP as CSP-JSON",
		Long: `Generate a uniform random binary CSP as CSP-JSON.

If #constraintDefs is missing it is set to #constraints, which matches the
classic urbcsp generator. Instances 0..#instances are generated and only the
last one is printed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(stderr, quiet)
			if configPath != "" {
				if len(args) != 0 {
					return &exitError{code: exitUsage, err: errors.New("positional arguments cannot be combined with --config")}
				}
				return runConfig(log, configPath, stdout)
			}
			p, err := paramsFromArgs(args)
			if err != nil {
				return &exitError{code: exitUsage, err: err}
			}
			if err := urbcsp.NewGenerator(p.S).Run(stdout, p); err != nil {
				log.Error("generation failed", "n", p.N, "d", p.D, "c", p.C, "t", p.T, "s", p.S, "i", p.I, "k", p.K, "err", err)
				return &exitError{code: exitGenerate}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	// Flags must precede the positional arguments so that a negative seed
	// is not read as a shorthand flag.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file listing generator runs")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	return cmd
}

func newLogger(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError + 4
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func paramsFromArgs(args []string) (urbcsp.Params, error) {
	if len(args) != 6 && len(args) != 7 {
		return urbcsp.Params{}, fmt.Errorf("expected 6 or 7 arguments, got %d", len(args))
	}
	vals := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return urbcsp.Params{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	p := urbcsp.Params{N: vals[0], D: vals[1], C: vals[2], T: vals[3], I: vals[5]}
	seed, err := strconv.ParseInt(args[4], 10, 32)
	if err != nil {
		return urbcsp.Params{}, fmt.Errorf("seed: %w", err)
	}
	p.S = int32(seed)
	if len(vals) == 7 {
		p.K = vals[6]
		if p.K == 0 {
			return urbcsp.Params{}, errors.New("#constraintDefs must be positive")
		}
	}
	return p, nil
}

func runConfig(log *slog.Logger, path string, stdout io.Writer) error {
	cfg, err := urbcsp.LoadConfig(path)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	for i, r := range cfg.Runs {
		if err := runOne(r, stdout); err != nil {
			log.Error("run failed", "run", i, "err", err)
			return &exitError{code: exitGenerate}
		}
		log.Info("run complete", "run", i, "output", r.Output)
	}
	return nil
}

func runOne(r urbcsp.Run, stdout io.Writer) error {
	p := r.Params()
	if r.Output == "" {
		return urbcsp.NewGenerator(p.S).Run(stdout, p)
	}
	f, err := os.Create(r.Output)
	if err != nil {
		return err
	}
	if err := urbcsp.NewGenerator(p.S).Run(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
