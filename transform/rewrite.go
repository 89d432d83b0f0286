package transform

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// Stats counts the suspension points a Rewriter removed.
type Stats struct {
	Awaits  int `json:"awaits"`
	Blocks  int `json:"blocks"`
	Readies int `json:"readies"`
	Futures int `json:"futures"`
}

func (s Stats) Total() int {
	return s.Awaits + s.Blocks + s.Readies + s.Futures
}

func (s *Stats) Add(o Stats) {
	s.Awaits += o.Awaits
	s.Blocks += o.Blocks
	s.Readies += o.Readies
	s.Futures += o.Futures
}

// Rewriter removes every suspension point reachable from the nodes it
// visits:
//
//	async.Await(x)                 => x
//	async.Ready(x)                 => x
//	async.Block(func() T { ... })  => func() T { ... }()
//	async.Future[T]                => T
//	v, err := async.AwaitContext(ctx, x)  => v, err := x, ctx.Err()
//
// Replacements are rewritten again, so nothing nested survives.
// An expression statement whose replacement is neither a call nor a
// receive becomes `_ = x`.
// Everything else keeps its structure and evaluation order.
type Rewriter struct {
	Names Names
	Stats Stats
}

// RewriteBody rewrites body in place. Expression statements are
// rewritten directly, other statements through their children.
func (r *Rewriter) RewriteBody(body *ast.BlockStmt) {
	if body == nil {
		return
	}
	for i, stmt := range body.List {
		if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
			body.List[i] = r.rewriteExprStmt(exprStmt)
			continue
		}
		body.List[i] = r.rewriteNode(stmt).(ast.Stmt)
	}
}

func (r *Rewriter) rewriteExprStmt(stmt *ast.ExprStmt) ast.Stmt {
	replaced, ok := r.replace(astutil.Unparen(stmt.X))
	if !ok {
		stmt.X = r.rewriteNode(stmt.X).(ast.Expr)
		return stmt
	}
	if isStmtExpr(replaced) {
		stmt.X = replaced
		return stmt
	}
	return &ast.AssignStmt{
		Lhs:    []ast.Expr{&ast.Ident{Name: "_", NamePos: stmt.Pos()}},
		TokPos: stmt.Pos(),
		Tok:    token.ASSIGN,
		Rhs:    []ast.Expr{replaced},
	}
}

// isStmtExpr reports whether expr may stand alone as a statement.
func isStmtExpr(expr ast.Expr) bool {
	switch x := expr.(type) {
	case *ast.CallExpr:
		return true
	case *ast.UnaryExpr:
		return x.Op == token.ARROW
	}
	return false
}

// splitAwaitContext rewrites `AwaitContext(ctx, x)` in place where it is
// the only value of a two-value assignment, declaration or return.
// The operands are left for the caller's traversal.
func (r *Rewriter) splitAwaitContext(node ast.Node) {
	var values []ast.Expr
	switch n := node.(type) {
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
	}
	if len(values) != 1 {
		return
	}
	call, ok := r.Names.matchAwaitContext(values[0])
	if !ok {
		return
	}
	r.Stats.Awaits++
	split := []ast.Expr{call.Args[1], ctxErr(call.Args[0])}
	switch n := node.(type) {
	case *ast.AssignStmt:
		n.Rhs = split
	case *ast.ValueSpec:
		n.Values = split
	case *ast.ReturnStmt:
		n.Results = split
	}
}

func ctxErr(ctx ast.Expr) ast.Expr {
	return &ast.CallExpr{
		Fun: &ast.SelectorExpr{X: ctx, Sel: ast.NewIdent("Err")},
	}
}

// RewriteExpr returns expr with suspension points removed.
// expr may be modified in place.
func (r *Rewriter) RewriteExpr(expr ast.Expr) ast.Expr {
	if expr == nil {
		return nil
	}
	if replaced, ok := r.replace(expr); ok {
		return replaced
	}
	return r.rewriteNode(expr).(ast.Expr)
}

func (r *Rewriter) replace(expr ast.Expr) (ast.Expr, bool) {
	kind, operand, ok := r.Names.Match(expr)
	if !ok {
		return nil, false
	}
	switch kind {
	case KindAwait:
		r.Stats.Awaits++
	case KindReady:
		r.Stats.Readies++
	case KindBlock:
		r.Stats.Blocks++
		return r.flattenBlock(expr.(*ast.CallExpr)), true
	case KindFuture:
		r.Stats.Futures++
	case KindAwaitContext:
		// only reachable outside the positions splitAwaitContext
		// handles, which Validate rejects
		r.Stats.Awaits++
	}
	return r.RewriteExpr(operand), true
}

// flattenBlock turns Block(fn) into fn(), rewriting fn's body first.
func (r *Rewriter) flattenBlock(call *ast.CallExpr) ast.Expr {
	fn := call.Args[0]
	if lit, ok := fn.(*ast.FuncLit); ok {
		lit.Type = r.rewriteNode(lit.Type).(*ast.FuncType)
		r.RewriteBody(lit.Body)
	} else {
		fn = r.RewriteExpr(fn)
	}
	return &ast.CallExpr{Fun: fn}
}

func (r *Rewriter) rewriteNode(node ast.Node) ast.Node {
	return astutil.Apply(node, func(c *astutil.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.AssignStmt, *ast.ValueSpec, *ast.ReturnStmt:
			r.splitAwaitContext(n)
		case *ast.ExprStmt:
			if n != node {
				c.Replace(r.rewriteExprStmt(n))
				return false
			}
		}
		if c.Node() == node {
			return true
		}
		expr, ok := c.Node().(ast.Expr)
		if !ok {
			return true
		}
		replaced, ok := r.replace(expr)
		if !ok {
			return true
		}
		if needsCall(c.Parent()) {
			replaced = asCall(replaced)
		}
		c.Replace(replaced)
		// replacement is already rewritten
		return false
	}, nil)
}

// go and defer statements hold a *ast.CallExpr, not any expression
func needsCall(parent ast.Node) bool {
	switch parent.(type) {
	case *ast.GoStmt, *ast.DeferStmt:
		return true
	}
	return false
}

// asCall keeps calls as they are and turns any other expression x
// into func(interface{}) {}(x), which still evaluates x immediately.
func asCall(expr ast.Expr) *ast.CallExpr {
	if call, ok := expr.(*ast.CallExpr); ok {
		return call
	}
	discard := &ast.FuncLit{
		Type: &ast.FuncType{
			Params: &ast.FieldList{List: []*ast.Field{{Type: &ast.InterfaceType{Methods: &ast.FieldList{}}}}},
		},
		Body: &ast.BlockStmt{},
	}
	return &ast.CallExpr{Fun: discard, Args: []ast.Expr{expr}}
}
