// SPDX-License-Identifier: Apache-2.0

// Package bind substitutes bound parameter values into a statement AST,
// turning a prepared statement into a portal-ready statement with no free
// parameters.
package bind

import (
	"fmt"
	"math"
	"strconv"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/wire"
)

// Bind replaces $n placeholders in stmt with a literal derived from
// params[n-1]. Placeholders are rewritten in the VALUES lists, target lists
// and WHERE clauses of SELECT, INSERT, UPDATE and DELETE; placeholders in
// any other position are left in place. The statement is modified in place,
// so callers pass a clone. Failures are client-visible errors.
func Bind(stmt *pgq.RawStmt, params []wire.Value) error {
	b := binder{params: params}

	switch n := stmt.GetStmt().GetNode().(type) {
	case *pgq.Node_SelectStmt:
		return b.bindSelect(n.SelectStmt)
	case *pgq.Node_InsertStmt:
		return b.bindSelect(n.InsertStmt.GetSelectStmt().GetSelectStmt())
	case *pgq.Node_UpdateStmt:
		for _, target := range n.UpdateStmt.GetTargetList() {
			rt := target.GetResTarget()
			val, err := b.rewrite(rt.GetVal())
			if err != nil {
				return err
			}
			rt.Val = val
		}
		return b.rewriteInPlace(&n.UpdateStmt.WhereClause)
	case *pgq.Node_DeleteStmt:
		return b.rewriteInPlace(&n.DeleteStmt.WhereClause)
	default:
		if len(params) > 0 {
			return wire.FeatureNotSupported("this statement does not accept parameters")
		}
		return nil
	}
}

type binder struct {
	params []wire.Value
}

func (b binder) bindSelect(stmt *pgq.SelectStmt) error {
	if stmt == nil {
		return nil
	}
	for _, list := range stmt.GetValuesLists() {
		items := list.GetList().GetItems()
		for i := range items {
			item, err := b.rewrite(items[i])
			if err != nil {
				return err
			}
			items[i] = item
		}
	}
	for _, target := range stmt.GetTargetList() {
		rt := target.GetResTarget()
		val, err := b.rewrite(rt.GetVal())
		if err != nil {
			return err
		}
		rt.Val = val
	}
	return b.rewriteInPlace(&stmt.WhereClause)
}

// rewriteInPlace rewrites an optional expression slot.
func (b binder) rewriteInPlace(slot **pgq.Node) error {
	if *slot == nil {
		return nil
	}
	node, err := b.rewrite(*slot)
	if err != nil {
		return err
	}
	*slot = node
	return nil
}

// rewrite walks one expression, replacing placeholders with literals.
func (b binder) rewrite(node *pgq.Node) (*pgq.Node, error) {
	if node == nil {
		return nil, nil
	}
	switch n := node.GetNode().(type) {
	case *pgq.Node_ParamRef:
		number := int(n.ParamRef.GetNumber())
		if number < 1 || number > len(b.params) {
			return nil, wire.InvalidParameterValue(fmt.Sprintf("there is no parameter $%d", number))
		}
		return literalNode(b.params[number-1]), nil
	case *pgq.Node_AExpr:
		if err := b.rewriteInPlace(&n.AExpr.Lexpr); err != nil {
			return nil, err
		}
		if err := b.rewriteInPlace(&n.AExpr.Rexpr); err != nil {
			return nil, err
		}
		return node, nil
	case *pgq.Node_BoolExpr:
		args := n.BoolExpr.GetArgs()
		for i := range args {
			arg, err := b.rewrite(args[i])
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return node, nil
	case *pgq.Node_NullTest:
		return node, b.rewriteInPlace(&n.NullTest.Arg)
	case *pgq.Node_TypeCast:
		return node, b.rewriteInPlace(&n.TypeCast.Arg)
	case *pgq.Node_FuncCall:
		args := n.FuncCall.GetArgs()
		for i := range args {
			arg, err := b.rewrite(args[i])
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return node, nil
	case *pgq.Node_List:
		items := n.List.GetItems()
		for i := range items {
			item, err := b.rewrite(items[i])
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return node, nil
	default:
		return node, nil
	}
}

// literalNode renders a decoded parameter value as a constant AST node.
func literalNode(v wire.Value) *pgq.Node {
	c := &pgq.A_Const{Location: -1}
	switch v.Kind {
	case wire.KindNull:
		c.Isnull = true
	case wire.KindBool:
		c.Val = &pgq.A_Const_Boolval{Boolval: &pgq.Boolean{Boolval: v.Bool}}
	case wire.KindInt:
		if v.Int >= math.MinInt32 && v.Int <= math.MaxInt32 {
			c.Val = &pgq.A_Const_Ival{Ival: &pgq.Integer{Ival: int32(v.Int)}}
		} else {
			// Integer literals wider than int32 are carried as numeric text,
			// the same shape the parser produces for them.
			c.Val = &pgq.A_Const_Fval{Fval: &pgq.Float{Fval: strconv.FormatInt(v.Int, 10)}}
		}
	case wire.KindText:
		c.Val = &pgq.A_Const_Sval{Sval: &pgq.String{Sval: v.Text}}
	}
	return &pgq.Node{Node: &pgq.Node_AConst{AConst: c}}
}
