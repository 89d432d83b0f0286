package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andreyvit/diff"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xhd2015/gemini/support/fileutil"
	"github.com/xhd2015/gemini/support/goparse"
	"github.com/xhd2015/gemini/transform"
)

// Result is the outcome of planning one source file.
type Result struct {
	Source string       `json:"source"`
	Output string       `json:"output"`
	Funcs  []FuncResult `json:"funcs,omitempty"`

	// Generated is the blocking emission, nil when the source has
	// no annotated function.
	Generated []byte `json:"-"`
	// NewSource is the source with its build constraint fixed,
	// nil when the constraint is already right.
	NewSource []byte `json:"-"`
	// Prune is set when a stale generated file must be removed.
	Prune bool `json:"prune,omitempty"`
	// Stale reports that disk content differs from the plan.
	Stale bool `json:"stale,omitempty"`
	// Diff is a line diff between the generated file on disk and Generated.
	Diff string `json:"-"`

	oldOutput []byte
	hasOutput bool
}

// Plan computes both emissions for the go file at path without writing
// anything. All misuse errors of the file are reported together.
func Plan(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	content, file, fset, err := goparse.Parse(path)
	if err != nil {
		if content == nil {
			return nil, err
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if IsGenerated(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrGeneratedInput)
	}

	names := transform.ResolveNames(file, opts.AsyncPkg)
	annotated := transform.Annotated(file)
	var errs error
	for _, fn := range annotated {
		errs = multierr.Append(errs, transform.Validate(fset, fn, names))
	}
	if errs != nil {
		return nil, errs
	}

	bc, err := readConstraint(file)
	if err != nil {
		return nil, fmt.Errorf("%s: build constraint: %w", path, err)
	}

	res := &Result{
		Source: path,
		Output: OutputName(path),
	}
	res.oldOutput, err = os.ReadFile(res.Output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	res.hasOutput = err == nil

	base := baseOf(bc.expr, opts.Tag)
	if len(annotated) == 0 {
		if opts.NoPrune || !res.hasOutput || !IsGenerated(res.oldOutput) {
			return res, nil
		}
		res.Prune = true
		res.Stale = true
		if hasNotTag(bc.expr, opts.Tag) {
			res.NewSource, err = rewriteConstraint(fset, content, bc, base)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		Logger().Debug("plan prune", zap.String("source", path), zap.String("output", res.Output))
		return res, nil
	}

	if !hasNotTag(bc.expr, opts.Tag) {
		res.NewSource, err = rewriteConstraint(fset, content, bc, asyncConstraint(base, opts.Tag))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	res.Generated, res.Funcs, err = renderBlocking(path, content, opts.AsyncPkg, blockingConstraint(base, opts.Tag))
	if err != nil {
		return nil, err
	}
	if !res.hasOutput || !bytes.Equal(res.oldOutput, res.Generated) {
		res.Stale = true
		res.Diff = diff.LineDiff(string(res.oldOutput), string(res.Generated))
	}
	if res.NewSource != nil {
		res.Stale = true
	}
	Logger().Debug("plan",
		zap.String("source", path),
		zap.Int("funcs", len(res.Funcs)),
		zap.Bool("stale", res.Stale),
		zap.Bool("fix_source", res.NewSource != nil),
	)
	return res, nil
}

// Apply writes the planned emissions. The generated file is written
// before the source; if the source cannot be updated the generated file
// is restored so the two never disagree.
func (r *Result) Apply() error {
	if r.Prune {
		if err := os.Remove(r.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		Logger().Info("pruned", zap.String("output", r.Output))
	}
	var written bool
	if r.Generated != nil {
		var err error
		written, err = fileutil.WriteIfChanged(r.Output, r.Generated)
		if err != nil {
			return fmt.Errorf("write %s: %w", r.Output, err)
		}
		if written {
			Logger().Info("generated", zap.String("output", r.Output), zap.Int("funcs", len(r.Funcs)))
		}
	}
	if r.NewSource == nil {
		return nil
	}
	if _, err := fileutil.WriteIfChanged(r.Source, r.NewSource); err != nil {
		err = fmt.Errorf("update build constraint of %s: %w", r.Source, err)
		if written {
			err = multierr.Append(err, r.restoreOutput())
		}
		return err
	}
	Logger().Info("updated build constraint", zap.String("source", r.Source))
	return nil
}

func (r *Result) restoreOutput() error {
	if !r.hasOutput {
		return os.Remove(r.Output)
	}
	return os.WriteFile(r.Output, r.oldOutput, 0644)
}

// File plans the go file at path and, unless opts.DryRun or opts.Check is
// set, applies the plan.
func File(ctx context.Context, path string, opts Options) (*Result, error) {
	res, err := Plan(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun || opts.Check {
		return res, nil
	}
	if err := res.Apply(); err != nil {
		return nil, err
	}
	return res, nil
}
