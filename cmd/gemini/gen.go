package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/xhd2015/gemini/generate"
	"github.com/xhd2015/gemini/support/strutil"
)

func newGenCommand(stdout io.Writer, stderr io.Writer, check bool) *cobra.Command {
	o := newOptions()
	cmd := &cobra.Command{
		Use:   "gen [paths...]",
		Short: "Generate blocking variants",
		Long: `Generate writes <name>_gemini_sync.go next to every go file that has
//gemini:maybe functions and guards the source with //go:build !gemini_sync.
Directories are walked recursively. Without paths, $GOFILE is used when
run by go generate, else the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, o, defaultPaths(args), check, stdout, stderr)
		},
	}
	if check {
		cmd.Use = "check [paths...]"
		cmd.Short = "Fail if generated files are out of date"
		cmd.Long = `Check plans generation without writing and exits 1 if any generated
file or source build constraint would change.`
	} else {
		cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "print what would change without writing")
	}
	o.bind(cmd, true)
	return cmd
}

func runGen(cmd *cobra.Command, o *options, paths []string, check bool, stdout io.Writer, stderr io.Writer) error {
	cfg, err := o.resolve()
	if err != nil {
		return err
	}
	flush, err := setupLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer flush()

	opts := cfg.GenerateOptions()
	opts.Check = check
	opts.DryRun = o.dryRun
	results, err := generate.Paths(cmd.Context(), paths, opts)

	var stale *generate.StaleError
	if errors.As(err, &stale) {
		for _, res := range results {
			if !res.Stale {
				continue
			}
			fmt.Fprintf(stdout, "stale: %s\n", res.Source)
			if res.Diff != "" && cfg.Log.Level.Enabled(zapcore.DebugLevel) {
				fmt.Fprintln(stdout, strutil.IndentLines(res.Diff, "    "))
			}
		}
		return err
	}
	if err != nil {
		return err
	}
	if opts.DryRun {
		for _, res := range results {
			report(stdout, res, "would ")
		}
	}
	return nil
}

func report(w io.Writer, res *generate.Result, prefix string) {
	if !res.Stale {
		return
	}
	if res.Prune {
		fmt.Fprintf(w, "%sremove %s\n", prefix, res.Output)
	}
	if res.Generated != nil && res.Diff != "" {
		fmt.Fprintf(w, "%swrite %s (%d funcs)\n", prefix, res.Output, len(res.Funcs))
	}
	if res.NewSource != nil {
		fmt.Fprintf(w, "%supdate build constraint of %s\n", prefix, res.Source)
	}
}
