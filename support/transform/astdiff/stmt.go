package astdiff

import "go/ast"

func StmtsSame(a []ast.Stmt, b []ast.Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !StmtSame(e, b[i]) {
			return false
		}
	}
	return true
}

func StmtSame(a ast.Stmt, b ast.Stmt) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	switch a := a.(type) {
	case *ast.ReturnStmt:
		b, ok := b.(*ast.ReturnStmt)
		if !ok {
			return false
		}
		return ExprsSame(a.Results, b.Results)
	case *ast.AssignStmt:
		b, ok := b.(*ast.AssignStmt)
		if !ok {
			return false
		}
		if a.Tok != b.Tok {
			return false
		}
		return ExprsSame(a.Lhs, b.Lhs) && ExprsSame(a.Rhs, b.Rhs)
	case *ast.ExprStmt:
		b, ok := b.(*ast.ExprStmt)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X)
	case *ast.DeclStmt:
		b, ok := b.(*ast.DeclStmt)
		if !ok {
			return false
		}
		return DeclSame(a.Decl, b.Decl)
	case *ast.BlockStmt:
		b, ok := b.(*ast.BlockStmt)
		if !ok {
			return false
		}
		return blockStmtSame(a, b)
	case *ast.IfStmt:
		b, ok := b.(*ast.IfStmt)
		if !ok {
			return false
		}
		return StmtSame(a.Init, b.Init) && ExprSame(a.Cond, b.Cond) &&
			blockStmtSame(a.Body, b.Body) && StmtSame(a.Else, b.Else)
	case *ast.ForStmt:
		b, ok := b.(*ast.ForStmt)
		if !ok {
			return false
		}
		return StmtSame(a.Init, b.Init) && ExprSame(a.Cond, b.Cond) &&
			StmtSame(a.Post, b.Post) && blockStmtSame(a.Body, b.Body)
	case *ast.RangeStmt:
		b, ok := b.(*ast.RangeStmt)
		if !ok {
			return false
		}
		return a.Tok == b.Tok && ExprSame(a.Key, b.Key) && ExprSame(a.Value, b.Value) &&
			ExprSame(a.X, b.X) && blockStmtSame(a.Body, b.Body)
	case *ast.SwitchStmt:
		b, ok := b.(*ast.SwitchStmt)
		if !ok {
			return false
		}
		return StmtSame(a.Init, b.Init) && ExprSame(a.Tag, b.Tag) && blockStmtSame(a.Body, b.Body)
	case *ast.TypeSwitchStmt:
		b, ok := b.(*ast.TypeSwitchStmt)
		if !ok {
			return false
		}
		return StmtSame(a.Init, b.Init) && StmtSame(a.Assign, b.Assign) && blockStmtSame(a.Body, b.Body)
	case *ast.CaseClause:
		b, ok := b.(*ast.CaseClause)
		if !ok {
			return false
		}
		return ExprsSame(a.List, b.List) && StmtsSame(a.Body, b.Body)
	case *ast.SelectStmt:
		b, ok := b.(*ast.SelectStmt)
		if !ok {
			return false
		}
		return blockStmtSame(a.Body, b.Body)
	case *ast.CommClause:
		b, ok := b.(*ast.CommClause)
		if !ok {
			return false
		}
		return StmtSame(a.Comm, b.Comm) && StmtsSame(a.Body, b.Body)
	case *ast.SendStmt:
		b, ok := b.(*ast.SendStmt)
		if !ok {
			return false
		}
		return ExprSame(a.Chan, b.Chan) && ExprSame(a.Value, b.Value)
	case *ast.IncDecStmt:
		b, ok := b.(*ast.IncDecStmt)
		if !ok {
			return false
		}
		return a.Tok == b.Tok && ExprSame(a.X, b.X)
	case *ast.GoStmt:
		b, ok := b.(*ast.GoStmt)
		if !ok {
			return false
		}
		return ExprSame(a.Call, b.Call)
	case *ast.DeferStmt:
		b, ok := b.(*ast.DeferStmt)
		if !ok {
			return false
		}
		return ExprSame(a.Call, b.Call)
	case *ast.LabeledStmt:
		b, ok := b.(*ast.LabeledStmt)
		if !ok {
			return false
		}
		return identSame(a.Label, b.Label) && StmtSame(a.Stmt, b.Stmt)
	case *ast.BranchStmt:
		b, ok := b.(*ast.BranchStmt)
		if !ok {
			return false
		}
		return a.Tok == b.Tok && identSame(a.Label, b.Label)
	case *ast.EmptyStmt:
		_, ok := b.(*ast.EmptyStmt)
		return ok
	case *ast.BadStmt:
		_, ok := b.(*ast.BadStmt)
		return ok
	}
	return false
}
