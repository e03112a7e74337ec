// SPDX-License-Identifier: Apache-2.0

// Package dml implements the row-level commands: select (describe and
// execute), insert, update and delete. Commands re-validate existence
// against the catalog at dispatch time and return the protocol event to
// emit; semantic failures are returned as *wire.QueryError.
package dml

import (
	"fmt"
	"strconv"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/wire"
)

// evalLiteral evaluates a constant expression into a value. Anything beyond
// plain literals and casts of literals is out of scope for the engine.
func evalLiteral(node *pgq.Node) (wire.Value, error) {
	switch n := node.GetNode().(type) {
	case *pgq.Node_AConst:
		return constValue(n.AConst)
	case *pgq.Node_TypeCast:
		// Typed literals keep the written constant as the cast argument.
		return evalLiteral(n.TypeCast.GetArg())
	default:
		return wire.Value{}, fmt.Errorf("unsupported expression in value position")
	}
}

func constValue(c *pgq.A_Const) (wire.Value, error) {
	if c.GetIsnull() {
		return wire.NullValue(), nil
	}
	switch v := c.Val.(type) {
	case *pgq.A_Const_Ival:
		return wire.IntValue(int64(v.Ival.GetIval())), nil
	case *pgq.A_Const_Fval:
		// Large integer literals arrive as float strings; keep the text.
		if n, err := strconv.ParseInt(v.Fval.GetFval(), 10, 64); err == nil {
			return wire.IntValue(n), nil
		}
		return wire.TextValue(v.Fval.GetFval()), nil
	case *pgq.A_Const_Sval:
		return wire.TextValue(v.Sval.GetSval()), nil
	case *pgq.A_Const_Boolval:
		return wire.BoolValue(v.Boolval.GetBoolval()), nil
	default:
		return wire.Value{}, fmt.Errorf("unsupported constant kind")
	}
}
