package goparse

import (
	"go/ast"
	"go/token"
	"path/filepath"
)

// File is a parsed go file together with its source.
type File struct {
	Code    []byte
	Ast     *ast.File
	AbsFile string
	Fset    *token.FileSet
}

func ParseFile(file string) (*File, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	code, ast, fset, err := Parse(absFile)
	if err != nil {
		return nil, err
	}
	return &File{
		Code:    code,
		Ast:     ast,
		AbsFile: absFile,
		Fset:    fset,
	}, nil
}

func NewFile(file string, code []byte) (*File, error) {
	ast, fset, err := ParseFileCode(file, code)
	if err != nil {
		return nil, err
	}
	return &File{
		Code:    code,
		Ast:     ast,
		AbsFile: file,
		Fset:    fset,
	}, nil
}

// GetMethodDecl finds the method name of typeName, with a value,
// pointer or generic receiver.
func (c *File) GetMethodDecl(typeName string, name string) *ast.FuncDecl {
	return c.getDecl(typeName, name)
}

func (c *File) GetFuncDecl(name string) *ast.FuncDecl {
	return c.getDecl("", name)
}

func (c *File) getDecl(typeName string, name string) *ast.FuncDecl {
	for _, decl := range c.Ast.Decls {
		fnDecl, ok := decl.(*ast.FuncDecl)
		if !ok || fnDecl.Name.Name != name {
			continue
		}
		if typeName == "" {
			if fnDecl.Recv == nil {
				return fnDecl
			}
			continue
		}
		if RecvTypeName(fnDecl) == typeName {
			return fnDecl
		}
	}
	return nil
}

// RecvTypeName returns the receiver's type name of a method, "" for
// plain functions.
func RecvTypeName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	t := fn.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	switch x := t.(type) {
	case *ast.IndexExpr:
		t = x.X
	case *ast.IndexListExpr:
		t = x.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func (c *File) Position(pos token.Pos) token.Position {
	return c.Fset.Position(pos)
}

func (c *File) GetCode(node ast.Node) []byte {
	return c.GetCodeSlice(node.Pos(), node.End())
}

func (c *File) GetCodeSlice(start token.Pos, end token.Pos) []byte {
	i := Offset(c.Fset, start)
	j := Offset(c.Fset, end)
	if i < 0 || j < i || j > len(c.Code) {
		return nil
	}
	return c.Code[i:j]
}
