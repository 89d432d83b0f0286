package goparse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
)

func Parse(file string) (code []byte, ast *ast.File, fset *token.FileSet, err error) {
	code, err = os.ReadFile(file)
	if err != nil {
		return
	}
	ast, fset, err = ParseFileCode(file, code)
	return
}

// file is optional
func ParseFileCode(file string, code []byte) (ast *ast.File, fset *token.FileSet, err error) {
	fset = token.NewFileSet()
	ast, err = parser.ParseFile(fset, file, code, parser.ParseComments)
	return
}

func AddMissingPackage(code string, pkgName string) string {
	lines := strings.Split(code, "\n")
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "package ") {
			return code
		}
	}
	return "package " + pkgName + ";" + code
}

// ParseFunc parses a snippet holding one function declaration,
// adding `package main` when missing.
func ParseFunc(code string) (*ast.FuncDecl, *ast.File, *token.FileSet, error) {
	file, fset, err := ParseFileCode("snippet.go", []byte(AddMissingPackage(code, "main")))
	if err != nil {
		return nil, nil, nil, err
	}
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			return fn, file, fset, nil
		}
	}
	return nil, nil, nil, fmt.Errorf("no func declaration found")
}

// Offset returns the byte offset of pos, or -1 for token.NoPos.
func Offset(fset *token.FileSet, pos token.Pos) int {
	if pos == token.NoPos {
		return -1
	}
	return fset.Position(pos).Offset
}
