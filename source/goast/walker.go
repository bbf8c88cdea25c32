package goast

import (
	"go/ast"
	"go/constant"
	"go/token"
	"path/filepath"

	"github.com/rs/zerolog"

	i18n "github.com/goliatone/go-i18n-icu"
)

// walker turns DSL call trees of one file set into source messages.
type walker struct {
	fset   *token.FileSet
	root   string
	res    resolver
	logger zerolog.Logger
}

// messages finds every Msg/MsgID root call in file. Calls nested inside a
// root belong to that root.
func (w *walker) messages(file *ast.File) []i18n.SourceMessage {
	var out []i18n.SourceMessage
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		name, ok := w.res.dslName(call.Fun)
		if !ok || (name != "Msg" && name != "MsgID") {
			return true
		}
		if msg, ok := w.message(call, name); ok {
			out = append(out, msg)
		}
		return false
	})
	return out
}

func (w *walker) message(call *ast.CallExpr, name string) (i18n.SourceMessage, bool) {
	src := i18n.SourceMessage{Pos: w.position(call.Pos())}
	if call.Ellipsis != token.NoPos {
		w.logger.Warn().Str("pos", src.Pos.String()).Msg("Skipping message built from a spread slice")
		return src, false
	}

	args := call.Args
	if name == "MsgID" {
		if len(args) == 0 {
			return src, false
		}
		id, ok := w.constString(args[0])
		if !ok {
			w.logger.Warn().Str("pos", src.Pos.String()).Msg("Skipping message with a non-constant id")
			return src, false
		}
		src.ID = id
		args = args[1:]
	}

	src.Nodes = w.parts(args)
	return src, true
}

func (w *walker) parts(exprs []ast.Expr) []i18n.Node {
	nodes := make([]i18n.Node, 0, len(exprs))
	for _, expr := range exprs {
		nodes = append(nodes, w.part(expr)...)
	}
	return nodes
}

func (w *walker) part(expr ast.Expr) []i18n.Node {
	if value, ok := w.res.constValue(expr); ok {
		if value.Kind() == constant.String {
			return []i18n.Node{i18n.TextNode{Value: constant.StringVal(value)}}
		}
		return []i18n.Node{i18n.ArgumentNode{Pos: w.position(expr.Pos()), Value: goValue(value)}}
	}

	call, ok := unparen(expr).(*ast.CallExpr)
	if !ok {
		return []i18n.Node{w.dynamic(expr)}
	}
	name, ok := w.res.dslName(call.Fun)
	if !ok {
		return []i18n.Node{w.dynamic(expr)}
	}

	pos := w.position(call.Pos())
	switch name {
	case "Msg":
		return w.parts(call.Args)
	case "Var":
		if len(call.Args) > 0 {
			if name, ok := w.constString(call.Args[0]); ok && name != "" {
				return []i18n.Node{i18n.ArgumentNode{Name: name, Ident: true, Pos: pos}}
			}
		}
		return []i18n.Node{i18n.ArgumentNode{Pos: pos}}
	case "Arg":
		return []i18n.Node{i18n.ArgumentNode{Pos: pos}}
	case "Plural":
		return []i18n.Node{w.choice(i18n.ChoicePlural, call)}
	case "SelectOrdinal":
		return []i18n.Node{w.choice(i18n.ChoiceSelectOrdinal, call)}
	case "Select":
		return []i18n.Node{w.choice(i18n.ChoiceSelect, call)}
	case "Number":
		return []i18n.Node{w.format(i18n.FormatTypeNumber, call)}
	case "Date":
		return []i18n.Node{w.format(i18n.FormatTypeDate, call)}
	case "Tag":
		return []i18n.Node{w.markup(call)}
	}
	return []i18n.Node{w.dynamic(expr)}
}

// dynamic handles a non-constant, non-DSL part. It becomes a positional
// argument; at runtime only non-string values do, so string typed
// expressions should be wrapped in Arg or Var.
func (w *walker) dynamic(expr ast.Expr) i18n.Node {
	pos := w.position(expr.Pos())
	w.logger.Debug().Str("pos", pos.String()).Msg("Dynamic message part extracted as positional argument")
	return i18n.ArgumentNode{Pos: pos}
}

func (w *walker) choice(kind i18n.ChoiceKind, call *ast.CallExpr) i18n.Node {
	node := i18n.ChoiceNode{Kind: kind, Pos: w.position(call.Pos())}
	for _, arg := range call.Args {
		node.Attrs = append(node.Attrs, w.property(arg))
	}
	return node
}

// property reads Attr(key, value). Anything else is treated as a computed
// attribute since its label cannot be known before runtime.
func (w *walker) property(expr ast.Expr) i18n.Property {
	prop := i18n.Property{Pos: w.position(expr.Pos())}

	call, ok := unparen(expr).(*ast.CallExpr)
	if !ok {
		prop.Computed = true
		return prop
	}
	if name, ok := w.res.dslName(call.Fun); !ok || name != "Attr" || len(call.Args) != 2 {
		prop.Computed = true
		return prop
	}

	key, ok := w.constString(call.Args[0])
	if !ok {
		prop.Computed = true
		return prop
	}
	prop.Key = key
	prop.Value = w.operand(call.Args[1])
	prop.Content = w.content(call.Args[1])
	return prop
}

func (w *walker) operand(expr ast.Expr) i18n.Operand {
	pos := w.position(expr.Pos())
	if w.res.isNil(expr) {
		return i18n.Operand{Pos: pos}
	}
	if value, ok := w.res.constValue(expr); ok {
		if value.Kind() == constant.String {
			s := constant.StringVal(value)
			return i18n.Operand{Kind: i18n.OperandString, Literal: s, Value: s, Pos: pos}
		}
		return i18n.Operand{Kind: i18n.OperandNumber, Literal: literal(value), Value: goValue(value), Pos: pos}
	}

	switch e := unparen(expr).(type) {
	case *ast.CallExpr:
		name, ok := w.res.dslName(e.Fun)
		if ok && name == "Var" && len(e.Args) > 0 {
			if varName, ok := w.constString(e.Args[0]); ok && varName != "" {
				return i18n.Operand{Kind: i18n.OperandVariable, Name: varName, Pos: pos}
			}
		}
	case *ast.CompositeLit:
		if w.isStyleType(e.Type) {
			return w.object(e, pos)
		}
	case *ast.UnaryExpr:
		if lit, ok := e.X.(*ast.CompositeLit); ok && e.Op == token.AND && w.isStyleType(lit.Type) {
			return w.object(lit, pos)
		}
	}
	return i18n.Operand{Kind: i18n.OperandExpression, Pos: pos}
}

// isStyleType accepts i18n.Style and map[string]... literals.
func (w *walker) isStyleType(expr ast.Expr) bool {
	if name, ok := w.res.dslName(expr); ok {
		return name == "Style"
	}
	m, ok := expr.(*ast.MapType)
	if !ok {
		return false
	}
	key, ok := m.Key.(*ast.Ident)
	return ok && key.Name == "string"
}

func (w *walker) object(lit *ast.CompositeLit, pos i18n.Position) i18n.Operand {
	op := i18n.Operand{Kind: i18n.OperandObject, Pos: pos}
	style := i18n.Style{}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := w.constString(kv.Key)
		if !ok {
			continue
		}
		var value any
		if v, ok := w.res.constValue(kv.Value); ok {
			value = goValue(v)
		}
		style[key] = value
		op.Object = append(op.Object, i18n.ObjectField{Key: key, Value: value})
	}
	op.Value = style
	return op
}

func (w *walker) content(expr ast.Expr) []i18n.Node {
	if w.res.isNil(expr) {
		return nil
	}
	if value, ok := w.res.constValue(expr); ok {
		return []i18n.Node{i18n.TextNode{Value: literal(value)}}
	}
	return w.part(expr)
}

func (w *walker) format(typ string, call *ast.CallExpr) i18n.Node {
	node := i18n.FormatNode{Type: typ, Pos: w.position(call.Pos())}
	for _, arg := range call.Args {
		node.Args = append(node.Args, w.operand(arg))
	}
	return node
}

func (w *walker) markup(call *ast.CallExpr) i18n.Node {
	node := i18n.MarkupNode{Pos: w.position(call.Pos())}
	if len(call.Args) == 0 {
		return node
	}
	name, _ := w.constString(call.Args[0])
	node.Element = i18n.Element{Name: name}
	node.Children = w.parts(call.Args[1:])
	return node
}

func (w *walker) constString(expr ast.Expr) (string, bool) {
	value, ok := w.res.constValue(expr)
	if !ok || value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(value), true
}

func (w *walker) position(pos token.Pos) i18n.Position {
	p := w.fset.Position(pos)
	file := p.Filename
	if w.root != "" {
		if rel, err := filepath.Rel(w.root, file); err == nil {
			file = rel
		}
	}
	return i18n.Position{File: filepath.ToSlash(file), Line: p.Line, Column: p.Column}
}
