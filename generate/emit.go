package generate

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/format"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/xhd2015/gemini/support/edit/goedit"
	"github.com/xhd2015/gemini/support/goparse"
	"github.com/xhd2015/gemini/transform"
)

// FuncResult describes one rewritten function.
type FuncResult struct {
	Name  string          `json:"name"`
	Stats transform.Stats `json:"stats"`
}

// renderBlocking produces the blocking emission of a source file: a fresh
// parse of content (so the suspending original is never touched) with every
// annotated function rewritten, guarded by expr.
func renderBlocking(path string, content []byte, asyncPkg string, expr constraint.Expr) ([]byte, []FuncResult, error) {
	file, fset, err := goparse.ParseFileCode(path, content)
	if err != nil {
		return nil, nil, err
	}
	var annotated []int
	for i, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && transform.HasDirective(fn) {
			annotated = append(annotated, i)
		}
	}
	// directive lines are cut from the text rather than the tree, so
	// the printer does not leave a gap between doc and func
	if stripped, ok := stripDirectives(fset, content, file); ok {
		file, fset, err = goparse.ParseFileCode(path, stripped)
		if err != nil {
			return nil, nil, err
		}
	}
	names := transform.ResolveNames(file, asyncPkg)
	funcs := make([]FuncResult, 0, len(annotated))
	for _, i := range annotated {
		fn := file.Decls[i].(*ast.FuncDecl)
		stats := transform.ToBlocking(fn, names)
		funcs = append(funcs, FuncResult{
			Name:  transform.FuncName(fn),
			Stats: stats,
		})
	}
	dropBuildComments(file)
	removeUnusedImport(fset, file, asyncPkg)

	var buf bytes.Buffer
	buf.WriteString(GeneratedHeader)
	buf.WriteString("\n\n")
	if expr != nil {
		buf.WriteString("//go:build ")
		buf.WriteString(expr.String())
		buf.WriteString("\n\n")
	}
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, nil, fmt.Errorf("print %s: %w", path, err)
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("format %s: %w", path, err)
	}
	return code, funcs, nil
}

// stripDirectives deletes the directive lines of every annotated doc
// comment, together with a "//" separator line left dangling before them.
func stripDirectives(fset *token.FileSet, content []byte, file *ast.File) ([]byte, bool) {
	ed := goedit.New(fset, content)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil || !transform.HasDirective(fn) {
			continue
		}
		var kept []*ast.Comment
		for _, c := range fn.Doc.List {
			if !transform.IsDirective(c.Text) {
				kept = append(kept, c)
			}
		}
		for len(kept) > 0 && kept[len(kept)-1].Text == "//" {
			kept = kept[:len(kept)-1]
		}
		keep := make(map[*ast.Comment]bool, len(kept))
		for _, c := range kept {
			keep[c] = true
		}
		for _, c := range fn.Doc.List {
			if !keep[c] {
				deleteLine(ed, fset, content, c)
			}
		}
	}
	if !ed.Buffer().HasEdits() {
		return nil, false
	}
	return ed.Buffer().Bytes(), true
}

// dropBuildComments removes //go:build and // +build lines; the
// generated file gets its own constraint.
func dropBuildComments(file *ast.File) {
	var empty []*ast.CommentGroup
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		kept := group.List[:0]
		for _, c := range group.List {
			if constraint.IsGoBuild(c.Text) || constraint.IsPlusBuild(c.Text) {
				continue
			}
			kept = append(kept, c)
		}
		group.List = kept
		if len(kept) == 0 {
			empty = append(empty, group)
		}
	}
	for _, group := range empty {
		removeGroup(file, group)
		if file.Doc == group {
			file.Doc = nil
		}
	}
}

func removeGroup(file *ast.File, group *ast.CommentGroup) {
	for i, g := range file.Comments {
		if g == group {
			file.Comments = append(file.Comments[:i], file.Comments[i+1:]...)
			return
		}
	}
}

// removeUnusedImport drops the async import once nothing refers to it.
func removeUnusedImport(fset *token.FileSet, file *ast.File, asyncPkg string) {
	if astutil.UsesImport(file, asyncPkg) {
		return
	}
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != asyncPkg {
			continue
		}
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		}
		astutil.DeleteNamedImport(fset, file, name, asyncPkg)
		return
	}
}
