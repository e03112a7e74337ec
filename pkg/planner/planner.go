// SPDX-License-Identifier: Apache-2.0

// Package planner transforms the parsed statement AST into the plans the
// executor dispatches on, validating names and existence against the
// catalog.
package planner

import (
	"fmt"
	"math"
	"strings"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/sqltype"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// Processor turns one parsed statement into a Plan. Validation failures are
// returned as *wire.QueryError; the caller owns emission.
type Processor struct {
	catalog *catalog.Manager
}

func NewProcessor(cat *catalog.Manager) *Processor {
	return &Processor{catalog: cat}
}

// Process plans a single statement. rawSQL is the statement's source text,
// used verbatim in feature-not-supported diagnostics.
func (p *Processor) Process(rawSQL string, stmt *pgq.RawStmt) (Plan, error) {
	switch node := stmt.GetStmt().GetNode().(type) {
	case *pgq.Node_CreateSchemaStmt:
		return p.planCreateSchema(node.CreateSchemaStmt)
	case *pgq.Node_CreateStmt:
		return p.planCreateTable(node.CreateStmt)
	case *pgq.Node_DropStmt:
		return p.planDrop(rawSQL, node.DropStmt)
	case *pgq.Node_InsertStmt:
		return p.planInsert(node.InsertStmt)
	case *pgq.Node_SelectStmt:
		return Select{Stmt: node.SelectStmt}, nil
	case *pgq.Node_UpdateStmt:
		return Update{Stmt: node.UpdateStmt}, nil
	case *pgq.Node_DeleteStmt:
		return Delete{Stmt: node.DeleteStmt}, nil
	case *pgq.Node_TransactionStmt:
		switch node.TransactionStmt.GetKind() {
		case pgq.TransactionStmtKind_TRANS_STMT_BEGIN, pgq.TransactionStmtKind_TRANS_STMT_START:
			return StartTransaction{}, nil
		default:
			return Unsupported{}, nil
		}
	case *pgq.Node_VariableSetStmt:
		return SetVariable{}, nil
	default:
		return Unsupported{}, nil
	}
}

func (p *Processor) planCreateSchema(stmt *pgq.CreateSchemaStmt) (Plan, error) {
	name := stmt.GetSchemaname()
	if p.catalog.SchemaExists(name) {
		return nil, wire.SchemaAlreadyExists(name)
	}
	return CreateSchema{Schema: name}, nil
}

func (p *Processor) planCreateTable(stmt *pgq.CreateStmt) (Plan, error) {
	ref, err := schema.TableRefFromRangeVar(stmt.GetRelation())
	if err != nil {
		return nil, wire.SyntaxError(err.Error())
	}

	switch p.catalog.Lookup(ref.Schema, ref.Table) {
	case catalog.SchemaMissing:
		return nil, wire.SchemaDoesNotExist(ref.Schema)
	case catalog.TableFound:
		return nil, wire.TableAlreadyExists(ref.String())
	}

	var columns []schema.Column
	for _, elt := range stmt.GetTableElts() {
		cd, ok := elt.GetNode().(*pgq.Node_ColumnDef)
		if !ok {
			continue
		}
		colType, err := typeFromName(cd.ColumnDef.GetTypeName())
		if err != nil {
			return nil, err
		}
		columns = append(columns, schema.Column{
			Name: cd.ColumnDef.GetColname(),
			Type: colType,
		})
	}
	return CreateTable{Table: ref, Columns: columns}, nil
}

func (p *Processor) planDrop(rawSQL string, stmt *pgq.DropStmt) (Plan, error) {
	cascade := stmt.GetBehavior() == pgq.DropBehavior_DROP_CASCADE

	switch stmt.GetRemoveType() {
	case pgq.ObjectType_OBJECT_TABLE:
		tables := make([]schema.TableRef, 0, len(stmt.GetObjects()))
		for _, obj := range stmt.GetObjects() {
			ref, err := schema.TableRefFrom(nameParts(obj)...)
			if err != nil {
				return nil, wire.SyntaxError(err.Error())
			}
			switch p.catalog.Lookup(ref.Schema, ref.Table) {
			case catalog.SchemaMissing:
				return nil, wire.SchemaDoesNotExist(ref.Schema)
			case catalog.TableMissing:
				return nil, wire.TableDoesNotExist(ref.String())
			}
			tables = append(tables, ref)
		}
		return DropTables{Tables: tables}, nil

	case pgq.ObjectType_OBJECT_SCHEMA:
		schemas := make([]SchemaDrop, 0, len(stmt.GetObjects()))
		for _, obj := range stmt.GetObjects() {
			ref, err := schema.SchemaRefFrom(nameParts(obj)...)
			if err != nil {
				return nil, wire.SyntaxError(err.Error())
			}
			if !p.catalog.SchemaExists(ref.Schema) {
				return nil, wire.SchemaDoesNotExist(ref.Schema)
			}
			schemas = append(schemas, SchemaDrop{Schema: ref, Cascade: cascade})
		}
		return DropSchemas{Schemas: schemas}, nil

	default:
		return nil, wire.FeatureNotSupported(rawSQL)
	}
}

func (p *Processor) planInsert(stmt *pgq.InsertStmt) (Plan, error) {
	ref, err := schema.TableRefFromRangeVar(stmt.GetRelation())
	if err != nil {
		return nil, wire.SyntaxError(err.Error())
	}

	columns := make([]string, 0, len(stmt.GetCols()))
	for _, col := range stmt.GetCols() {
		columns = append(columns, col.GetResTarget().GetName())
	}

	return Insert{
		Table:   ref,
		Columns: columns,
		Source:  stmt.GetSelectStmt().GetSelectStmt(),
	}, nil
}

// nameParts flattens a drop-statement object into its name segments.
func nameParts(obj *pgq.Node) []string {
	switch n := obj.GetNode().(type) {
	case *pgq.Node_List:
		parts := make([]string, 0, len(n.List.GetItems()))
		for _, item := range n.List.GetItems() {
			parts = append(parts, item.GetString_().GetSval())
		}
		return parts
	case *pgq.Node_String_:
		return []string{n.String_.GetSval()}
	default:
		return nil
	}
}

// typeFromName maps a parsed type name onto the engine's column types.
func typeFromName(t *pgq.TypeName) (sqltype.Type, error) {
	parts := make([]string, 0, len(t.GetNames()))
	for _, node := range t.GetNames() {
		part := node.GetString_().GetSval()
		if part == "pg_catalog" {
			continue
		}
		parts = append(parts, part)
	}
	name := strings.Join(parts, ".")

	switch name {
	case "int2", "smallint":
		return sqltype.SmallInt(math.MinInt16), nil
	case "int4", "int", "integer":
		return sqltype.Integer(math.MinInt32), nil
	case "int8", "bigint":
		return sqltype.BigInt(math.MinInt64), nil
	case "bpchar", "char":
		return sqltype.Char(charLen(t)), nil
	case "varchar":
		return sqltype.VarChar(charLen(t)), nil
	case "bool", "boolean":
		return sqltype.Bool(), nil
	case "serial":
		return sqltype.Integer(1), nil
	case "smallserial":
		return sqltype.SmallInt(1), nil
	case "bigserial":
		return sqltype.BigInt(1), nil
	default:
		return sqltype.Type{}, wire.FeatureNotSupported(fmt.Sprintf("%s type is not supported", name))
	}
}

// charLen extracts the declared length of a character type, falling back to
// the default when no length is written. The parser's implicit length of 1
// for a bare CHAR carries no source location and is ignored.
func charLen(t *pgq.TypeName) uint64 {
	for _, mod := range t.GetTypmods() {
		ac := mod.GetAConst()
		if ac == nil || ac.GetLocation() < 0 {
			continue
		}
		if ival, ok := ac.Val.(*pgq.A_Const_Ival); ok {
			return uint64(ival.Ival.GetIval())
		}
	}
	return sqltype.DefaultCharLen
}
