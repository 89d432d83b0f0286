// Package astdiff compares go syntax trees structurally,
// ignoring positions, comments and formatting.
package astdiff

import (
	"go/ast"
)

func NodeSame(a ast.Node, b ast.Node) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	switch a := a.(type) {
	case ast.Stmt:
		b, ok := b.(ast.Stmt)
		if !ok {
			return false
		}
		return StmtSame(a, b)
	case ast.Expr:
		b, ok := b.(ast.Expr)
		if !ok {
			return false
		}
		return ExprSame(a, b)
	case ast.Spec:
		b, ok := b.(ast.Spec)
		if !ok {
			return false
		}
		return SpecSame(a, b)
	case ast.Decl:
		b, ok := b.(ast.Decl)
		if !ok {
			return false
		}
		return DeclSame(a, b)
	case *ast.File:
		b, ok := b.(*ast.File)
		if !ok {
			return false
		}
		return FileSame(a, b)
	}
	return false
}

func FileSame(a *ast.File, b *ast.File) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if !identSame(a.Name, b.Name) {
		return false
	}
	if !DeclsSame(a.Decls, b.Decls) {
		return false
	}
	return true
}

func DeclsSame(a []ast.Decl, b []ast.Decl) bool {
	if len(a) != len(b) {
		return false
	}
	for i, d := range a {
		if !DeclSame(d, b[i]) {
			return false
		}
	}
	return true
}

func DeclSame(a ast.Decl, b ast.Decl) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	switch a := a.(type) {
	case *ast.GenDecl:
		b, ok := b.(*ast.GenDecl)
		if !ok {
			return false
		}
		if a.Tok != b.Tok {
			return false
		}
		return SpecsSame(a.Specs, b.Specs)
	case *ast.FuncDecl:
		b, ok := b.(*ast.FuncDecl)
		if !ok {
			return false
		}
		return FuncDeclSame(a, b)
	case *ast.BadDecl:
		_, ok := b.(*ast.BadDecl)
		return ok
	}
	return false
}

func SpecsSame(a []ast.Spec, b []ast.Spec) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !SpecSame(e, b[i]) {
			return false
		}
	}
	return true
}

func FuncDeclSame(a *ast.FuncDecl, b *ast.FuncDecl) bool {
	return funcDeclSame(a, b, false)
}

func FuncDeclSameIgnoreBody(a *ast.FuncDecl, b *ast.FuncDecl) bool {
	return funcDeclSame(a, b, true)
}

// BlockSame compares two bodies statement by statement.
func BlockSame(a *ast.BlockStmt, b *ast.BlockStmt) bool {
	return blockStmtSame(a, b)
}

func funcDeclSame(a *ast.FuncDecl, b *ast.FuncDecl, ignoreBody bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if !fieldListSame(a.Recv, b.Recv) {
		return false
	}
	if !identSame(a.Name, b.Name) {
		return false
	}
	if !funcTypeSame(a.Type, b.Type) {
		return false
	}
	if !ignoreBody && !blockStmtSame(a.Body, b.Body) {
		return false
	}
	return true
}

func funcTypeSame(a *ast.FuncType, b *ast.FuncType) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return fieldListSame(a.TypeParams, b.TypeParams) &&
		fieldListSame(a.Params, b.Params) &&
		fieldListSame(a.Results, b.Results)
}

func fieldListSame(a *ast.FieldList, b *ast.FieldList) bool {
	if a == nil || b == nil {
		return fieldListLen(a) == 0 && fieldListLen(b) == 0
	}
	return fieldsSame(a.List, b.List)
}

func fieldListLen(f *ast.FieldList) int {
	if f == nil {
		return 0
	}
	return len(f.List)
}

func fieldsSame(a []*ast.Field, b []*ast.Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !fieldSame(e, b[i]) {
			return false
		}
	}
	return true
}

func fieldSame(a *ast.Field, b *ast.Field) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if !identsSame(a.Names, b.Names) {
		return false
	}
	if !ExprSame(a.Type, b.Type) {
		return false
	}
	if !basicLitSame(a.Tag, b.Tag) {
		return false
	}
	return true
}

func blockStmtSame(a *ast.BlockStmt, b *ast.BlockStmt) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return StmtsSame(a.List, b.List)
}

func basicLitSame(a *ast.BasicLit, b *ast.BasicLit) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	return a.Value == b.Value
}

func identsSame(a []*ast.Ident, b []*ast.Ident) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !identSame(e, b[i]) {
			return false
		}
	}
	return true
}

func identSame(a *ast.Ident, b *ast.Ident) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || a.Name == b.Name
}
