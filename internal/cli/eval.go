package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/engine"
	"github.com/hull-opt/hull/internal/mccormick"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	Refine      int
	NoCut       bool
	NoIntersect bool
	Clip        bool
}

// problem is the on-disk form of an evaluation request: a graph (in the
// dag YAML schema), a box, and an evaluation point. The graph fields
// live at the top level, so the same document feeds dag.FromYAML.
type problem struct {
	Box struct {
		Lower []float64 `yaml:"lower"`
		Upper []float64 `yaml:"upper"`
	} `yaml:"box"`
	Point []float64 `yaml:"point"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <problem.yaml>",
		Short: "Evaluate relaxation bounds for a problem file",
		Long: `Evaluate convex/concave relaxation bounds for the expression graph in
a problem file at the given point over the given box. Repeated passes
with --refine tighten the bounds by intersection and affine cuts.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Refine, "refine", 0, "number of refinement passes after the first")
	cmd.Flags().BoolVar(&opts.NoCut, "no-cut", false, "disable the affine interval cut")
	cmd.Flags().BoolVar(&opts.NoIntersect, "no-intersect", false, "disable intersection with prior passes")
	cmd.Flags().BoolVar(&opts.Clip, "clip", false, "clip domain violations instead of failing")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(rootOpts.Verbose)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read problem: %w", err)
	}
	var p problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode problem: %w", err)
	}
	g, err := dag.FromYAML(data)
	if err != nil {
		return err
	}
	if len(p.Box.Lower) != g.NumVars || len(p.Box.Upper) != g.NumVars || len(p.Point) != g.NumVars {
		return fmt.Errorf("problem needs %d-dimensional box and point", g.NumVars)
	}
	logger.Debug("problem loaded", "nodes", len(g.Nodes), "variables", g.NumVars)

	cfg := engine.DefaultConfig()
	cfg.AffineCut = !opts.NoCut
	cfg.Intersect = !opts.NoIntersect
	if opts.Clip {
		cfg.Guard = mccormick.Guard{Mode: mccormick.GuardClip}
	}

	ev, err := engine.New(g, cfg)
	if err != nil {
		return err
	}
	box := engine.Box{Lower: p.Box.Lower, Upper: p.Box.Upper}

	if err := ev.Eval(box, p.Point, engine.Fresh); err != nil {
		return err
	}
	for i := 0; i < opts.Refine; i++ {
		if err := ev.Eval(box, p.Point, engine.Refine); err != nil {
			return err
		}
		if !ev.RootIsNumber() {
			r := ev.RootRelaxation()
			logger.Debug("refined", "pass", i+1, "lo", r.Intv.Lo, "hi", r.Intv.Hi)
		}
	}

	out := cmd.OutOrStdout()
	if ev.RootIsNumber() {
		fmt.Fprintf(out, "value: %g\n", ev.RootNumber())
		return nil
	}
	r := ev.RootRelaxation()
	fmt.Fprintf(out, "range:  [%g, %g]\n", r.Intv.Lo, r.Intv.Hi)
	fmt.Fprintf(out, "convex:  %g\n", r.CV)
	fmt.Fprintf(out, "concave: %g\n", r.CC)
	return nil
}

// newLogger builds a text slog logger on stderr so command output stays
// machine readable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
