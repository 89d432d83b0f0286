package transform

import (
	"go/ast"
	"path"
	"strconv"
)

// DefaultAsyncPkg is the import path of the runtime package whose
// Future, Block, Await and Ready mark suspension.
const DefaultAsyncPkg = "github.com/xhd2015/gemini/async"

const (
	funcAwait        = "Await"
	funcAwaitContext = "AwaitContext"
	funcBlock        = "Block"
	funcReady        = "Ready"
	typeFuture       = "Future"
)

// known lists the async package members the rewrite erases.
var known = map[string]bool{
	funcAwait:        true,
	funcAwaitContext: true,
	funcBlock:        true,
	funcReady:        true,
	typeFuture:       true,
}

// Names holds the local name under which a file imports the async package.
// The zero Names matches nothing.
type Names struct {
	Async string
}

func (n Names) Valid() bool {
	return n.Async != ""
}

// ResolveNames finds the local name of asyncPkg in file.
// Blank and dot imports are not recognized.
func ResolveNames(file *ast.File, asyncPkg string) Names {
	if asyncPkg == "" {
		asyncPkg = DefaultAsyncPkg
	}
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != asyncPkg {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			return Names{Async: imp.Name.Name}
		}
		return Names{Async: path.Base(asyncPkg)}
	}
	return Names{}
}

// isRef reports whether expr is `<async>.name`, possibly instantiated
// with explicit type arguments.
func (n Names) isRef(expr ast.Expr, name string) bool {
	if !n.Valid() {
		return false
	}
	switch x := expr.(type) {
	case *ast.IndexExpr:
		expr = x.X
	case *ast.IndexListExpr:
		expr = x.X
	}
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	return ok && id.Name == n.Async
}

// matchCall matches `<async>.name(arg)`.
func (n Names) matchCall(expr ast.Expr, name string) (*ast.CallExpr, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 || call.Ellipsis.IsValid() {
		return nil, false
	}
	if !n.isRef(call.Fun, name) {
		return nil, false
	}
	return call, true
}

// futureElem matches the type `<async>.Future[T]` and returns T.
func (n Names) futureElem(expr ast.Expr) (ast.Expr, bool) {
	idx, ok := expr.(*ast.IndexExpr)
	if !ok {
		return nil, false
	}
	sel, ok := idx.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != typeFuture {
		return nil, false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok || !n.Valid() || id.Name != n.Async {
		return nil, false
	}
	return idx.Index, true
}

// Kind is a suspension form.
type Kind string

const (
	KindAwait  Kind = "await"
	KindReady  Kind = "ready"
	KindBlock  Kind = "block"
	KindFuture Kind = "future"

	KindAwaitContext Kind = "await-context"
)

// Match reports the suspension form of expr and its operand: the
// argument of Await, Ready and Block, or T of Future[T].
func (n Names) Match(expr ast.Expr) (Kind, ast.Expr, bool) {
	if !n.Valid() {
		return "", nil, false
	}
	if call, ok := n.matchCall(expr, funcAwait); ok {
		return KindAwait, call.Args[0], true
	}
	if call, ok := n.matchCall(expr, funcReady); ok {
		return KindReady, call.Args[0], true
	}
	if call, ok := n.matchCall(expr, funcBlock); ok {
		return KindBlock, call.Args[0], true
	}
	if call, ok := n.matchAwaitContext(expr); ok {
		return KindAwaitContext, call.Args[1], true
	}
	if elem, ok := n.futureElem(expr); ok {
		return KindFuture, elem, true
	}
	return "", nil, false
}

// matchAwaitContext matches `<async>.AwaitContext(ctx, f)`.
func (n Names) matchAwaitContext(expr ast.Expr) (*ast.CallExpr, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 2 || call.Ellipsis.IsValid() {
		return nil, false
	}
	if !n.isRef(call.Fun, funcAwaitContext) {
		return nil, false
	}
	return call, true
}

// ref returns the member name of a `<async>.Name` selector.
func (n Names) ref(expr ast.Expr) (string, bool) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || !n.Valid() {
		return "", false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok || id.Name != n.Async {
		return "", false
	}
	return sel.Sel.Name, true
}

// IsSuspending reports whether fn carries the suspending marker:
// exactly one result, of type Future[T].
func (n Names) IsSuspending(fn *ast.FuncDecl) bool {
	_, ok := n.marker(fn)
	return ok
}

func (n Names) marker(fn *ast.FuncDecl) (*ast.Field, bool) {
	if fn == nil || fn.Type == nil || fn.Type.Results == nil {
		return nil, false
	}
	results := fn.Type.Results.List
	if len(results) != 1 || len(results[0].Names) > 1 {
		return nil, false
	}
	if _, ok := n.futureElem(results[0].Type); !ok {
		return nil, false
	}
	return results[0], true
}
