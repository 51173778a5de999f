package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cspjson "github.com/michal-dobrogost/csp-json"
	"github.com/michal-dobrogost/csp-json/i18n"
	"github.com/michal-dobrogost/csp-json/urbcsp"
)

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	log            *slog.Logger

	verbose       bool
	lang          string
	maxDepth      int
	maxTokens     int
	duplicateKeys string
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cspjson",
		Short:         "Inspect and rewrite CSP-JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			i18n.SetLanguage(a.lang)
			if _, err := a.severity(); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			return nil
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log parse and timing details")
	pf.StringVar(&a.lang, "lang", "en", "message language (en, ja)")
	pf.IntVar(&a.maxDepth, "max-depth", 0, "maximum nesting depth (0: unlimited)")
	pf.IntVar(&a.maxTokens, "max-tokens", 0, "maximum token count (0: unlimited)")
	pf.StringVar(&a.duplicateKeys, "duplicate-keys", "ignore", "duplicate object keys: ignore, warn or error")

	root.AddCommand(a.validateCmd(), a.normalizeCmd(), a.fmtCmd(), a.checkCmd(), a.infoCmd())
	return root
}

func (a *app) severity() (cspjson.Severity, error) {
	switch strings.ToLower(a.duplicateKeys) {
	case "ignore", "":
		return cspjson.Ignore, nil
	case "warn":
		return cspjson.Warn, nil
	case "error":
		return cspjson.Error, nil
	}
	return cspjson.Ignore, fmt.Errorf("invalid --duplicate-keys %q", a.duplicateKeys)
}

func (a *app) parseOpt() cspjson.ParseOpt {
	sev, _ := a.severity()
	return cspjson.ParseOpt{
		OnDuplicateKey: sev,
		MaxDepth:       a.maxDepth,
		MaxTokens:      a.maxTokens,
		OnWarning: func(is cspjson.Issue) {
			a.log.Warn("parse warning", "code", is.Code, "path", is.Path, "offset", is.Offset)
		},
	}
}

// read loads path, or standard input for "-".
func (a *app) read(path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, &exitError{code: exitFailure, err: fmt.Errorf("reading stdin: %w", err)}
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}
	return b, nil
}

// load reads and parses path into csp.
func (a *app) load(path string, csp *cspjson.Csp) error {
	data, err := a.read(path)
	if err != nil {
		return err
	}
	if err := cspjson.Parse(data, csp, a.parseOpt()); err != nil {
		return a.docError(path, err)
	}
	a.log.Debug("parsed", "file", path, "bytes", len(data),
		"domains", len(csp.Domains), "vars", csp.Vars.Len(),
		"constraintDefs", len(csp.ConstraintDefs), "constraints", len(csp.Constraints))
	return nil
}

func (a *app) docError(path string, err error) error {
	return &exitError{code: exitCode(err), err: fmt.Errorf("%s: %w", path, err)}
}

// write sends b to out, or to standard output when out is empty.
func (a *app) write(out string, b []byte) error {
	if out == "" {
		_, err := a.stdout.Write(b)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	return nil
}

func (a *app) validateCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse a document and check its references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var csp cspjson.Csp
			defer csp.Free()
			if err := a.load(args[0], &csp); err != nil {
				return err
			}
			if !all {
				if err := cspjson.Validate(&csp); err != nil {
					return a.docError(args[0], err)
				}
			} else if iss := cspjson.ValidateAll(&csp); len(iss) > 0 {
				for _, is := range iss {
					fmt.Fprintf(a.stderr, "%s: %s\n", args[0], is.Error())
				}
				return &exitError{code: exitCode(iss)}
			}
			fmt.Fprintf(a.stdout, "%s: ok\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "report every violation instead of the first")
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Sort domain values and no-goods, then print",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var csp cspjson.Csp
			defer csp.Free()
			if err := a.load(args[0], &csp); err != nil {
				return err
			}
			if err := cspjson.Normalize(&csp); err != nil {
				return a.docError(args[0], err)
			}
			b, err := cspjson.Marshal(&csp)
			if err != nil {
				return a.docError(args[0], err)
			}
			return a.write(out, b)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func (a *app) fmtCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Reprint a document in the canonical layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var csp cspjson.Csp
			defer csp.Free()
			if err := a.load(args[0], &csp); err != nil {
				return err
			}
			b, err := cspjson.Marshal(&csp)
			if err != nil {
				return a.docError(args[0], err)
			}
			return a.write(out, b)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var inline string
	cmd := &cobra.Command{
		Use:   "check FILE [SOLUTION_FILE]",
		Short: "Check whether an assignment solves a document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solData []byte
			switch {
			case len(args) == 2 && inline == "":
				b, err := a.read(args[1])
				if err != nil {
					return err
				}
				solData = b
			case len(args) == 1 && inline != "":
				solData = []byte(inline)
			default:
				return &exitError{code: exitFailure, err: fmt.Errorf("give the solution either as SOLUTION_FILE or with --solution")}
			}

			var csp cspjson.Csp
			defer csp.Free()
			if err := a.load(args[0], &csp); err != nil {
				return err
			}
			sol, err := cspjson.ParseTuples(cspjson.Flat, solData, a.parseOpt())
			if err != nil {
				return a.docError("solution", err)
			}
			defer sol.Free()

			solved, err := cspjson.IsSolved(&csp, sol)
			if err != nil {
				return a.docError(args[0], err)
			}
			if !solved {
				fmt.Fprintln(a.stdout, "not solved")
				return &exitError{code: exitNotSolved}
			}
			fmt.Fprintln(a.stdout, "solved")
			return nil
		},
	}
	cmd.Flags().StringVar(&inline, "solution", "", "assignment as a JSON array, one value per variable")
	return cmd
}

// summary is the YAML document printed by info.
type summary struct {
	ID             string         `yaml:"id"`
	Algo           string         `yaml:"algo"`
	Params         any            `yaml:"params,omitempty"`
	Domains        int            `yaml:"domains"`
	Vars           int            `yaml:"vars"`
	ConstraintDefs int            `yaml:"constraintDefs"`
	Constraints    int            `yaml:"constraints"`
	NoGoods        int            `yaml:"noGoods"`
	Valid          bool           `yaml:"valid"`
	Issues         []string       `yaml:"issues,omitempty"`
	Generator      *generatorInfo `yaml:"generator,omitempty"`
}

type generatorInfo struct {
	Variables      int   `yaml:"variables"`
	DomainSize     int   `yaml:"domainSize"`
	Constraints    int   `yaml:"constraints"`
	NoGoods        int   `yaml:"noGoods"`
	Seed           int32 `yaml:"seed"`
	Instance       int   `yaml:"instance"`
	ConstraintDefs int   `yaml:"constraintDefs"`
}

// noGoodCounter totals no-goods across definitions.
type noGoodCounter struct{ n int }

func (c *noGoodCounter) VisitNoGoods(d *cspjson.NoGoodsDef) error {
	c.n += d.NoGoods.Len()
	return nil
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print a YAML summary of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var csp cspjson.Csp
			defer csp.Free()
			if err := a.load(args[0], &csp); err != nil {
				return err
			}
			s := summary{
				ID:             csp.Meta.ID,
				Algo:           csp.Meta.Algo,
				Domains:        len(csp.Domains),
				Vars:           csp.Vars.Len(),
				ConstraintDefs: len(csp.ConstraintDefs),
				Constraints:    len(csp.Constraints),
			}
			if err := csp.Meta.DecodeParams(&s.Params); err != nil {
				a.log.Warn("params not decodable", "err", err)
			}
			var ng noGoodCounter
			for _, d := range csp.ConstraintDefs {
				if d != nil {
					_ = d.Accept(&ng)
				}
			}
			s.NoGoods = ng.n
			iss := cspjson.ValidateAll(&csp)
			s.Valid = len(iss) == 0
			for _, is := range iss {
				s.Issues = append(s.Issues, is.Error())
			}
			if p, instance, err := urbcsp.ParamsFromMeta(csp.Meta); err == nil {
				s.Generator = &generatorInfo{
					Variables:      p.N,
					DomainSize:     p.D,
					Constraints:    p.C,
					NoGoods:        p.T,
					Seed:           p.S,
					Instance:       instance,
					ConstraintDefs: p.K,
				}
			}

			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(s); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			if err := enc.Close(); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			return a.write("", buf.Bytes())
		},
	}
}
