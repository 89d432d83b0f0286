// Package explain renders where annotated functions suspend.
package explain

import (
	"errors"
	"fmt"
	"go/ast"
	"path/filepath"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/xhd2015/gemini/support/goparse"
	"github.com/xhd2015/gemini/transform"
)

type Options struct {
	// AsyncPkg is the import path of the async runtime package,
	// transform.DefaultAsyncPkg if empty.
	AsyncPkg string
	// Func limits the output to one function, `Name` or `Type.Name`.
	Func string
}

// File explains the go file at path.
func File(path string, opts Options) (string, error) {
	f, err := goparse.ParseFile(path)
	if err != nil {
		return "", err
	}
	return explain(f, filepath.Base(path), opts)
}

// Code explains code as if it were the file name.
func Code(name string, code []byte, opts Options) (string, error) {
	f, err := goparse.NewFile(name, code)
	if err != nil {
		return "", err
	}
	return explain(f, name, opts)
}

func explain(f *goparse.File, name string, opts Options) (string, error) {
	names := transform.ResolveNames(f.Ast, opts.AsyncPkg)
	fns := transform.Annotated(f.Ast)
	if opts.Func != "" {
		fn := lookup(f, opts.Func)
		if fn == nil || !transform.HasDirective(fn) {
			return "", fmt.Errorf("%s: no //gemini:maybe function %s", name, opts.Func)
		}
		fns = []*ast.FuncDecl{fn}
	}

	tree := treeprint.New()
	tree.SetValue(name)
	for _, fn := range fns {
		e := &explainer{file: f, name: name, names: names}
		branch := tree.AddBranch(transform.FuncName(fn))
		if err := transform.Validate(f.Fset, fn, names); err != nil {
			var misuse *transform.MisuseError
			if errors.As(err, &misuse) {
				err = misuse.Reason()
			}
			branch.AddMetaNode("error", err.Error())
			continue
		}
		e.walk(branch, fn.Body)
		branch.SetValue(fmt.Sprintf("%s %s", transform.FuncName(fn), e.stats.summary()))
	}
	// treeprint pads the │ connector with non-breaking spaces
	return strings.ReplaceAll(tree.String(), "\u00a0", " "), nil
}

func lookup(f *goparse.File, name string) *ast.FuncDecl {
	if typ, method, ok := strings.Cut(name, "."); ok {
		return f.GetMethodDecl(typ, method)
	}
	return f.GetFuncDecl(name)
}

type explainer struct {
	file  *goparse.File
	name  string
	names transform.Names
	stats stats
}

type stats transform.Stats

func (s stats) summary() string {
	return fmt.Sprintf("(awaits=%d blocks=%d readies=%d)", s.Awaits, s.Blocks, s.Readies)
}

// walk adds a node for every suspension under n, nesting the ones
// found inside a Block body or an awaited operand.
func (e *explainer) walk(tree treeprint.Tree, n ast.Node) {
	if n == nil {
		return
	}
	ast.Inspect(n, func(node ast.Node) bool {
		expr, ok := node.(ast.Expr)
		if !ok {
			return true
		}
		kind, operand, ok := e.names.Match(expr)
		if !ok || kind == transform.KindFuture {
			return true
		}
		switch kind {
		case transform.KindAwait, transform.KindAwaitContext:
			e.stats.Awaits++
		case transform.KindReady:
			e.stats.Readies++
		case transform.KindBlock:
			e.stats.Blocks++
		}
		text := e.text(operand)
		if kind == transform.KindBlock {
			if lit, ok := operand.(*ast.FuncLit); ok {
				text = string(e.file.GetCode(lit.Type))
			}
		}
		child := tree.AddMetaBranch(kind, fmt.Sprintf("%s %s", e.position(expr), text))
		e.walk(child, operand)
		return false
	})
}

func (e *explainer) position(n ast.Node) string {
	pos := e.file.Position(n.Pos())
	return fmt.Sprintf("%s:%d:%d", e.name, pos.Line, pos.Column)
}

// text is the source of expr on one line.
func (e *explainer) text(expr ast.Expr) string {
	code := string(e.file.GetCode(expr))
	if i := strings.IndexByte(code, '\n'); i >= 0 {
		code = code[:i] + " ..."
	}
	return code
}
