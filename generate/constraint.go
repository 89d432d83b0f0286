package generate

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
	"strings"

	"github.com/xhd2015/gemini/support/edit/goedit"
	"github.com/xhd2015/gemini/support/goparse"
)

type buildConstraint struct {
	expr      constraint.Expr // nil when the file is unconstrained
	goBuild   *ast.Comment
	plusBuild []*ast.Comment
}

func readConstraint(file *ast.File) (*buildConstraint, error) {
	bc := &buildConstraint{}
	var plusExpr constraint.Expr
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, c := range group.List {
			switch {
			case constraint.IsGoBuild(c.Text):
				if bc.goBuild != nil {
					return nil, fmt.Errorf("multiple //go:build lines")
				}
				expr, err := constraint.Parse(c.Text)
				if err != nil {
					return nil, fmt.Errorf("parse %q: %w", c.Text, err)
				}
				bc.goBuild = c
				bc.expr = expr
			case constraint.IsPlusBuild(c.Text):
				expr, err := constraint.Parse(c.Text)
				if err != nil {
					return nil, fmt.Errorf("parse %q: %w", c.Text, err)
				}
				bc.plusBuild = append(bc.plusBuild, c)
				plusExpr = and(plusExpr, expr)
			}
		}
	}
	if bc.goBuild == nil {
		bc.expr = plusExpr
	}
	return bc, nil
}

func and(x constraint.Expr, y constraint.Expr) constraint.Expr {
	if x == nil {
		return y
	}
	if y == nil {
		return x
	}
	return &constraint.AndExpr{X: x, Y: y}
}

func conjuncts(x constraint.Expr) []constraint.Expr {
	if x == nil {
		return nil
	}
	if a, ok := x.(*constraint.AndExpr); ok {
		return append(conjuncts(a.X), conjuncts(a.Y)...)
	}
	return []constraint.Expr{x}
}

func isNotTag(x constraint.Expr, tag string) bool {
	not, ok := x.(*constraint.NotExpr)
	if !ok {
		return false
	}
	t, ok := not.X.(*constraint.TagExpr)
	return ok && t.Tag == tag
}

// hasNotTag reports whether x requires !tag at its top level.
func hasNotTag(x constraint.Expr, tag string) bool {
	for _, c := range conjuncts(x) {
		if isNotTag(c, tag) {
			return true
		}
	}
	return false
}

// baseOf removes the top-level !tag conjuncts from x.
func baseOf(x constraint.Expr, tag string) constraint.Expr {
	var base constraint.Expr
	for _, c := range conjuncts(x) {
		if isNotTag(c, tag) {
			continue
		}
		base = and(base, c)
	}
	return base
}

// asyncConstraint guards the hand-written suspending source.
func asyncConstraint(base constraint.Expr, tag string) constraint.Expr {
	return and(base, &constraint.NotExpr{X: &constraint.TagExpr{Tag: tag}})
}

// blockingConstraint guards the generated blocking file.
func blockingConstraint(base constraint.Expr, tag string) constraint.Expr {
	return and(base, &constraint.TagExpr{Tag: tag})
}

// rewriteConstraint replaces the build constraint lines of a source file
// with expr, removing them when expr is nil. Legacy // +build lines are
// kept in sync only when present.
func rewriteConstraint(fset *token.FileSet, content []byte, bc *buildConstraint, expr constraint.Expr) ([]byte, error) {
	ed := goedit.New(fset, content)
	var goBuildLine string
	if expr != nil {
		goBuildLine = "//go:build " + expr.String()
	}
	if bc.goBuild != nil {
		if expr != nil {
			ed.Replace(bc.goBuild.Pos(), bc.goBuild.End(), goBuildLine)
		} else {
			deleteLine(ed, fset, content, bc.goBuild)
		}
	}
	if len(bc.plusBuild) > 0 {
		var plusLines []string
		if expr != nil {
			var err error
			plusLines, err = constraint.PlusBuildLines(expr)
			if err != nil {
				return nil, err
			}
		}
		for i, c := range bc.plusBuild {
			if i == 0 && len(plusLines) > 0 {
				prefix := ""
				if bc.goBuild == nil {
					prefix = goBuildLine + "\n"
				}
				ed.Replace(c.Pos(), c.End(), prefix+strings.Join(plusLines, "\n"))
				continue
			}
			deleteLine(ed, fset, content, c)
		}
	} else if bc.goBuild == nil && expr != nil {
		ed.InsertAt(0, goBuildLine+"\n\n")
	}
	return ed.Buffer().Bytes(), nil
}

// deleteLine deletes the comment c together with its line break.
func deleteLine(ed *goedit.Edit, fset *token.FileSet, content []byte, c *ast.Comment) {
	end := c.End()
	if off := goparse.Offset(fset, end); off < len(content) && content[off] == '\n' {
		end++
	}
	ed.Delete(c.Pos(), end)
}
