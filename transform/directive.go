package transform

import (
	"go/ast"
	"strings"
)

// Directive annotates a function for which both variants are generated.
// Anything after it on the same line is ignored.
const Directive = "//gemini:maybe"

// HasDirective reports whether fn's doc comment carries the directive.
func HasDirective(fn *ast.FuncDecl) bool {
	if fn.Doc == nil {
		return false
	}
	for _, c := range fn.Doc.List {
		if IsDirective(c.Text) {
			return true
		}
	}
	return false
}

// Annotated returns the annotated function declarations of file in order.
func Annotated(file *ast.File) []*ast.FuncDecl {
	var fns []*ast.FuncDecl
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !HasDirective(fn) {
			continue
		}
		fns = append(fns, fn)
	}
	return fns
}

// IsDirective reports whether a comment text is the directive.
func IsDirective(text string) bool {
	if !strings.HasPrefix(text, Directive) {
		return false
	}
	rest := text[len(Directive):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// stripDirective drops directive lines from doc, returning nil
// when nothing else remains.
func stripDirective(doc *ast.CommentGroup) *ast.CommentGroup {
	if doc == nil {
		return nil
	}
	list := make([]*ast.Comment, 0, len(doc.List))
	for _, c := range doc.List {
		if IsDirective(c.Text) {
			continue
		}
		list = append(list, c)
	}
	if len(list) == 0 {
		return nil
	}
	return &ast.CommentGroup{List: list}
}
