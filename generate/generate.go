// Package generate emits the two mutually exclusive variants of every
// //gemini:maybe function in a set of go files.
//
// The hand-written source is the suspending variant. It is guarded by
// `//go:build !<tag>`, which is added to the source when missing. The
// blocking variant is written to a sibling file (see OutputName) guarded
// by `//go:build <tag>`, so `go build -tags <tag>` selects it.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xhd2015/gemini/support/fileutil"
	"github.com/xhd2015/gemini/transform"
)

// DefaultTag is the build tag selecting the blocking variants.
const DefaultTag = "gemini_sync"

var (
	// ErrStale is returned in check mode when generated files
	// or source constraints are out of date.
	ErrStale = errors.New("generated files are out of date")
	// ErrGeneratedInput is returned for a file written by gemini itself.
	ErrGeneratedInput = errors.New("file is generated by gemini")
)

type Options struct {
	// Tag selects the blocking variant, DefaultTag if empty.
	Tag string
	// AsyncPkg is the import path of the async runtime package,
	// transform.DefaultAsyncPkg if empty.
	AsyncPkg string
	// Concurrency bounds files planned in parallel, GOMAXPROCS if <= 0.
	Concurrency int
	// DryRun plans without writing.
	DryRun bool
	// Check plans without writing and fails with ErrStale if
	// anything would change.
	Check bool
	// NoPrune keeps generated files whose source lost all annotations.
	NoPrune bool
}

func (o Options) withDefaults() Options {
	if o.Tag == "" {
		o.Tag = DefaultTag
	}
	if o.AsyncPkg == "" {
		o.AsyncPkg = transform.DefaultAsyncPkg
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// StaleError lists the sources whose emissions are out of date.
type StaleError struct {
	Files []string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrStale, strings.Join(e.Files, ", "))
}

func (e *StaleError) Unwrap() error {
	return ErrStale
}

// Paths generates for every go file under paths. Files are planned
// concurrently; nothing is written unless every file planned without
// error. Results are sorted by source path and include only files that
// have something to say: annotated functions, a fix or a prune.
func Paths(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	opts = opts.withDefaults()
	files, err := Collect(paths)
	if err != nil {
		return nil, err
	}
	Logger().Debug("collected files", zap.Int("count", len(files)))

	results := make([]*Result, len(files))
	errs := make([]error, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = Plan(gctx, file, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	var relevant []*Result
	var stale []string
	for _, res := range results {
		if res == nil || (res.Generated == nil && !res.Prune) {
			continue
		}
		relevant = append(relevant, res)
		if res.Stale {
			stale = append(stale, res.Source)
		}
	}
	if opts.Check {
		if len(stale) > 0 {
			return relevant, &StaleError{Files: stale}
		}
		return relevant, nil
	}
	if opts.DryRun {
		return relevant, nil
	}
	for _, res := range relevant {
		if err := res.Apply(); err != nil {
			return relevant, err
		}
	}
	return relevant, nil
}

// Collect expands paths into go source files: directories are walked
// recursively, skipping testdata, vendor and hidden or underscore
// directories, and files generated by gemini.
func Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(file string) {
		file = filepath.Clean(file)
		if seen[file] {
			return
		}
		seen[file] = true
		files = append(files, file)
	}
	for _, p := range paths {
		isDir, err := fileutil.DirExists(p)
		if err != nil {
			return nil, err
		}
		if !isDir {
			if !strings.HasSuffix(p, ".go") {
				return nil, fmt.Errorf("%s: not a go file", p)
			}
			add(p)
			continue
		}
		err = fileutil.WalkRelative(p, func(path string, relPath string, d fs.DirEntry) error {
			if d.IsDir() {
				if relPath != "" && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			name := d.Name()
			if !strings.HasSuffix(name, ".go") || IsOutputName(name) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	if name == "testdata" || name == "vendor" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
