package astdiff

import (
	"go/ast"
	"go/token"
)

func ExprSame(a ast.Expr, b ast.Expr) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	switch a := a.(type) {
	case *ast.Ident:
		b, ok := b.(*ast.Ident)
		if !ok {
			return false
		}
		return a.Name == b.Name
	case *ast.BasicLit:
		b, ok := b.(*ast.BasicLit)
		if !ok {
			return false
		}
		return basicLitSame(a, b)
	case *ast.SelectorExpr:
		b, ok := b.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		return identSame(a.Sel, b.Sel) && ExprSame(a.X, b.X)
	case *ast.CallExpr:
		b, ok := b.(*ast.CallExpr)
		if !ok {
			return false
		}
		if !ExprSame(a.Fun, b.Fun) {
			return false
		}
		if !ExprsSame(a.Args, b.Args) {
			return false
		}
		return (a.Ellipsis == token.NoPos) == (b.Ellipsis == token.NoPos)
	case *ast.BinaryExpr:
		b, ok := b.(*ast.BinaryExpr)
		if !ok {
			return false
		}
		if a.Op != b.Op {
			return false
		}
		return ExprSame(a.X, b.X) && ExprSame(a.Y, b.Y)
	case *ast.UnaryExpr:
		b, ok := b.(*ast.UnaryExpr)
		if !ok {
			return false
		}
		return a.Op == b.Op && ExprSame(a.X, b.X)
	case *ast.ParenExpr:
		b, ok := b.(*ast.ParenExpr)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X)
	case *ast.StarExpr:
		b, ok := b.(*ast.StarExpr)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X)
	case *ast.IndexExpr:
		b, ok := b.(*ast.IndexExpr)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X) && ExprSame(a.Index, b.Index)
	case *ast.IndexListExpr:
		b, ok := b.(*ast.IndexListExpr)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X) && ExprsSame(a.Indices, b.Indices)
	case *ast.SliceExpr:
		b, ok := b.(*ast.SliceExpr)
		if !ok {
			return false
		}
		return a.Slice3 == b.Slice3 && ExprSame(a.X, b.X) &&
			ExprSame(a.Low, b.Low) && ExprSame(a.High, b.High) && ExprSame(a.Max, b.Max)
	case *ast.TypeAssertExpr:
		b, ok := b.(*ast.TypeAssertExpr)
		if !ok {
			return false
		}
		return ExprSame(a.X, b.X) && ExprSame(a.Type, b.Type)
	case *ast.KeyValueExpr:
		b, ok := b.(*ast.KeyValueExpr)
		if !ok {
			return false
		}
		return ExprSame(a.Key, b.Key) && ExprSame(a.Value, b.Value)
	case *ast.CompositeLit:
		b, ok := b.(*ast.CompositeLit)
		if !ok {
			return false
		}
		return ExprSame(a.Type, b.Type) && ExprsSame(a.Elts, b.Elts)
	case *ast.FuncLit:
		b, ok := b.(*ast.FuncLit)
		if !ok {
			return false
		}
		return funcTypeSame(a.Type, b.Type) && blockStmtSame(a.Body, b.Body)
	case *ast.FuncType:
		b, ok := b.(*ast.FuncType)
		if !ok {
			return false
		}
		return funcTypeSame(a, b)
	case *ast.Ellipsis:
		b, ok := b.(*ast.Ellipsis)
		if !ok {
			return false
		}
		return ExprSame(a.Elt, b.Elt)
	case *ast.ArrayType:
		b, ok := b.(*ast.ArrayType)
		if !ok {
			return false
		}
		return ExprSame(a.Len, b.Len) && ExprSame(a.Elt, b.Elt)
	case *ast.MapType:
		b, ok := b.(*ast.MapType)
		if !ok {
			return false
		}
		return ExprSame(a.Key, b.Key) && ExprSame(a.Value, b.Value)
	case *ast.ChanType:
		b, ok := b.(*ast.ChanType)
		if !ok {
			return false
		}
		return a.Dir == b.Dir && ExprSame(a.Value, b.Value)
	case *ast.StructType:
		b, ok := b.(*ast.StructType)
		if !ok {
			return false
		}
		return fieldListSame(a.Fields, b.Fields)
	case *ast.InterfaceType:
		b, ok := b.(*ast.InterfaceType)
		if !ok {
			return false
		}
		return fieldListSame(a.Methods, b.Methods)
	case *ast.BadExpr:
		_, ok := b.(*ast.BadExpr)
		return ok
	}
	return false
}

func ExprsSame(a []ast.Expr, b []ast.Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !ExprSame(e, b[i]) {
			return false
		}
	}
	return true
}
