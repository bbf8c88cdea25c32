package goast

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
	"strings"
)

// resolver answers the two questions the walker asks about an expression:
// does it name a DSL function or type, and is it a constant.
type resolver interface {
	dslName(expr ast.Expr) (string, bool)
	constValue(expr ast.Expr) (constant.Value, bool)
	isNil(expr ast.Expr) bool
}

// typedResolver uses type information from go/packages, so aliased and dot
// imports as well as named constants are recognized.
type typedResolver struct {
	info        *types.Info
	packagePath string
}

func (r typedResolver) dslName(expr ast.Expr) (string, bool) {
	var ident *ast.Ident
	switch e := unparen(expr).(type) {
	case *ast.Ident:
		ident = e
	case *ast.SelectorExpr:
		ident = e.Sel
	default:
		return "", false
	}

	obj := r.info.Uses[ident]
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != r.packagePath {
		return "", false
	}
	return obj.Name(), true
}

func (r typedResolver) constValue(expr ast.Expr) (constant.Value, bool) {
	tv, ok := r.info.Types[expr]
	if !ok || tv.Value == nil {
		return nil, false
	}
	return tv.Value, true
}

func (r typedResolver) isNil(expr ast.Expr) bool {
	tv, ok := r.info.Types[expr]
	return ok && tv.IsNil()
}

// syntacticResolver works on a single parsed file. The DSL is recognized
// through the import names of its package and constants are limited to
// literals and their concatenation.
type syntacticResolver struct {
	names map[string]struct{}
}

func newSyntacticResolver(file *ast.File, packagePath string) syntacticResolver {
	r := syntacticResolver{names: make(map[string]struct{})}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path != packagePath {
			continue
		}
		name := "i18n"
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" {
			continue
		}
		r.names[name] = struct{}{}
	}
	return r
}

func (r syntacticResolver) dslName(expr ast.Expr) (string, bool) {
	sel, ok := unparen(expr).(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", false
	}
	if _, ok := r.names[pkg.Name]; !ok {
		return "", false
	}
	return sel.Sel.Name, true
}

func (r syntacticResolver) constValue(expr ast.Expr) (constant.Value, bool) {
	switch e := unparen(expr).(type) {
	case *ast.BasicLit:
		value := constant.MakeFromLiteral(e.Value, e.Kind, 0)
		return value, value.Kind() != constant.Unknown
	case *ast.BinaryExpr:
		if e.Op != token.ADD {
			return nil, false
		}
		x, ok := r.constValue(e.X)
		if !ok {
			return nil, false
		}
		y, ok := r.constValue(e.Y)
		if !ok || x.Kind() != y.Kind() {
			return nil, false
		}
		return constant.BinaryOp(x, token.ADD, y), true
	case *ast.UnaryExpr:
		if e.Op != token.SUB {
			return nil, false
		}
		x, ok := r.constValue(e.X)
		if !ok {
			return nil, false
		}
		return constant.UnaryOp(token.SUB, x, 0), true
	}
	return nil, false
}

func (r syntacticResolver) isNil(expr ast.Expr) bool {
	ident, ok := unparen(expr).(*ast.Ident)
	return ok && ident.Name == "nil"
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.X
	}
}

// literal renders a constant the way the runtime prints the same value.
func literal(value constant.Value) string {
	switch value.Kind() {
	case constant.String:
		return constant.StringVal(value)
	case constant.Int:
		return value.ExactString()
	case constant.Float:
		f, _ := constant.Float64Val(value)
		return strconv.FormatFloat(f, 'f', -1, 64)
	case constant.Bool:
		return strconv.FormatBool(constant.BoolVal(value))
	}
	return strings.TrimSpace(value.String())
}

// goValue converts a constant into the value a runtime caller would pass.
func goValue(value constant.Value) any {
	switch value.Kind() {
	case constant.String:
		return constant.StringVal(value)
	case constant.Int:
		if i, ok := constant.Int64Val(value); ok {
			return int(i)
		}
	case constant.Float:
		f, _ := constant.Float64Val(value)
		return f
	case constant.Bool:
		return constant.BoolVal(value)
	}
	return nil
}
