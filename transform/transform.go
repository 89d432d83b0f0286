// Package transform derives the blocking variant of a suspending function.
//
// A function annotated with //gemini:maybe must return async.Future[T].
// Transform keeps the declaration as the suspending variant and builds a
// deep copy whose signature returns T and whose body has every Await,
// AwaitContext, Ready and Block erased.
package transform

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"github.com/xhd2015/gemini/support/goparse"
)

// ErrNotSuspending is the diagnostic for an annotated function that
// does not carry the suspending marker.
var ErrNotSuspending = errors.New("gemini:maybe requires a suspending function: the only result must be async.Future[T]")

// ErrUnsupported is the diagnostic for a use of the async package inside
// an annotated function that the blocking variant could not express.
var ErrUnsupported = errors.New("gemini:maybe cannot erase this use of the async package")

// MisuseError reports an annotated function that is not suspending, or
// that uses the async package in a way the rewrite cannot erase.
type MisuseError struct {
	Func string
	Pos  token.Position
	// Err is ErrNotSuspending when nil.
	Err error
}

func (e *MisuseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %v", e.Pos, e.Func, e.Reason())
	}
	return fmt.Sprintf("%s: %v", e.Func, e.Reason())
}

// Reason is the diagnostic without position and function name.
func (e *MisuseError) Reason() error {
	if e.Err == nil {
		return ErrNotSuspending
	}
	return e.Err
}

func (e *MisuseError) Unwrap() error {
	return e.Reason()
}

// Variants is the pair emitted for one annotated function.
// Both share the same name; build constraints keep only one visible.
type Variants struct {
	Async    *ast.FuncDecl
	Blocking *ast.FuncDecl
	Stats    Stats
}

// Validate checks the suspending marker of fn and that every use of the
// async package in it can be erased. fset may be nil.
func Validate(fset *token.FileSet, fn *ast.FuncDecl, names Names) error {
	err := &MisuseError{Func: FuncName(fn)}
	pos := fn.Pos()
	if names.IsSuspending(fn) {
		node, reason := unsupportedUse(fn, names)
		if node == nil {
			return nil
		}
		pos = node.Pos()
		err.Err = fmt.Errorf("%w: %s", ErrUnsupported, reason)
	}
	if fset != nil {
		err.Pos = fset.Position(pos)
	}
	return err
}

// unsupportedUse finds the first reference to the async package that
// would survive the rewrite.
func unsupportedUse(fn *ast.FuncDecl, names Names) (ast.Node, string) {
	// AwaitContext is erased only as the single value of a two-value
	// assignment, declaration or return
	splittable := make(map[ast.Expr]bool)
	// functions referenced as the callee of a matched call
	called := make(map[ast.Expr]bool)
	ast.Inspect(fn, func(n ast.Node) bool {
		var values []ast.Expr
		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) == 2 {
				values = n.Rhs
			}
		case *ast.ValueSpec:
			if len(n.Names) == 2 {
				values = n.Values
			}
		case *ast.ReturnStmt:
			values = n.Results
		case *ast.CallExpr:
			if kind, _, ok := names.Match(n); ok && kind != KindFuture {
				called[unindex(n.Fun)] = true
			}
		}
		if len(values) == 1 {
			if call, ok := names.matchAwaitContext(values[0]); ok {
				splittable[call] = true
			}
		}
		return true
	})

	var node ast.Node
	var reason string
	ast.Inspect(fn, func(n ast.Node) bool {
		if node != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.CallExpr:
			if call, ok := names.matchAwaitContext(n); ok && !splittable[call] {
				node = n
				reason = fmt.Sprintf("%s.%s must be the only value of a two-value assignment or return", names.Async, funcAwaitContext)
				return false
			}
		case *ast.SelectorExpr:
			name, ok := names.ref(n)
			if !ok {
				return true
			}
			switch {
			case !known[name]:
				node = n
				reason = fmt.Sprintf("%s.%s has no blocking form", names.Async, name)
			case name != typeFuture && !called[n]:
				node = n
				reason = fmt.Sprintf("%s.%s must be called directly", names.Async, name)
			}
			return false
		}
		return true
	})
	return node, reason
}

func unindex(expr ast.Expr) ast.Expr {
	switch x := expr.(type) {
	case *ast.IndexExpr:
		return x.X
	case *ast.IndexListExpr:
		return x.X
	}
	return expr
}

// Transform returns the original fn together with its blocking variant.
// fn is not modified.
func Transform(fset *token.FileSet, fn *ast.FuncDecl, names Names) (*Variants, error) {
	if err := Validate(fset, fn, names); err != nil {
		return nil, err
	}
	blocking := Clone(fn)
	stats := ToBlocking(blocking, names)
	return &Variants{
		Async:    fn,
		Blocking: blocking,
		Stats:    stats,
	}, nil
}

// ToBlocking rewrites a suspending fn in place into its blocking variant:
// the marker is cleared, the directive dropped and the body rewritten.
// Callers own fn exclusively; use Transform to keep the original.
func ToBlocking(fn *ast.FuncDecl, names Names) Stats {
	r := &Rewriter{Names: names}
	if field, ok := names.marker(fn); ok {
		elem, _ := names.futureElem(field.Type)
		field.Type = elem
	}
	fn.Doc = stripDirective(fn.Doc)
	if fn.Recv != nil {
		fn.Recv = r.rewriteNode(fn.Recv).(*ast.FieldList)
	}
	fn.Type = r.rewriteNode(fn.Type).(*ast.FuncType)
	r.RewriteBody(fn.Body)
	return r.Stats
}

// FuncName renders fn's name, qualified by its receiver type for methods.
func FuncName(fn *ast.FuncDecl) string {
	if recv := goparse.RecvTypeName(fn); recv != "" {
		return recv + "." + fn.Name.Name
	}
	return fn.Name.Name
}
