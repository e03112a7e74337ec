// SPDX-License-Identifier: Apache-2.0

package dml

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// SelectCommand reads rows from a single table. Describe computes the row
// description for the extended protocol; Execute produces the result set.
// Both share the same input parsing and column resolution.
type SelectCommand struct {
	rawSQL  string
	stmt    *pgq.SelectStmt
	catalog *catalog.Manager
}

func NewSelect(rawSQL string, stmt *pgq.SelectStmt, cat *catalog.Manager) *SelectCommand {
	return &SelectCommand{rawSQL: rawSQL, stmt: stmt, catalog: cat}
}

// selectInput is the validated shape of a select: the addressed table and
// the selected column names in selection order.
type selectInput struct {
	table    schema.TableRef
	selected []string
}

// Describe resolves the selection into a row description without scanning.
func (c *SelectCommand) Describe() (wire.Description, error) {
	input, err := c.parseInput()
	if err != nil {
		return nil, err
	}

	all, err := c.catalog.TableColumns(input.table.Schema, input.table.Table)
	if err != nil {
		return nil, err
	}

	_, defs, missing := resolveColumns(all, input.selected)
	if len(missing) > 0 {
		return nil, wire.ColumnDoesNotExist(missing)
	}

	description := make(wire.Description, len(defs))
	for i, def := range defs {
		description[i] = wire.Field{Name: def.Name, Type: wire.TypeOf(def.Type)}
	}
	return description, nil
}

// Execute scans the table and projects the selected columns, in selection
// order, for every stored row.
func (c *SelectCommand) Execute() (wire.QueryEvent, error) {
	input, err := c.parseInput()
	if err != nil {
		return nil, err
	}

	all, err := c.catalog.TableColumns(input.table.Schema, input.table.Table)
	if err != nil {
		return nil, err
	}

	indices, defs, missing := resolveColumns(all, input.selected)
	if len(missing) > 0 {
		return nil, wire.ColumnDoesNotExist(missing)
	}

	records, err := c.catalog.FullScan(input.table.Schema, input.table.Table)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(indices))
		for i, idx := range indices {
			row[i] = record.Values[idx]
		}
		rows = append(rows, row)
	}

	description := make(wire.Description, len(defs))
	for i, def := range defs {
		description[i] = wire.Field{Name: def.Name, Type: wire.TypeOf(def.Type)}
	}
	return wire.RecordsSelected{Description: description, Rows: rows}, nil
}

// parseInput validates the query shape: a plain SELECT over exactly one
// schema-qualified table, projecting only the wildcard or bare column
// names. Anything else is not supported.
func (c *SelectCommand) parseInput() (*selectInput, error) {
	stmt := c.stmt
	if stmt.GetOp() != pgq.SetOperation_SETOP_NONE ||
		len(stmt.GetValuesLists()) > 0 ||
		len(stmt.GetFromClause()) != 1 {
		return nil, wire.FeatureNotSupported(c.rawSQL)
	}

	rv, ok := stmt.GetFromClause()[0].GetNode().(*pgq.Node_RangeVar)
	if !ok {
		return nil, wire.FeatureNotSupported(c.rawSQL)
	}
	ref, err := schema.TableRefFromRangeVar(rv.RangeVar)
	if err != nil {
		return nil, wire.FeatureNotSupported(c.rawSQL)
	}

	switch c.catalog.Lookup(ref.Schema, ref.Table) {
	case catalog.SchemaMissing:
		return nil, wire.SchemaDoesNotExist(ref.Schema)
	case catalog.TableMissing:
		return nil, wire.TableDoesNotExist(ref.String())
	}

	var selected []string
	for _, target := range stmt.GetTargetList() {
		colRef, ok := target.GetResTarget().GetVal().GetNode().(*pgq.Node_ColumnRef)
		if !ok || len(colRef.ColumnRef.GetFields()) != 1 {
			return nil, wire.FeatureNotSupported(c.rawSQL)
		}
		switch field := colRef.ColumnRef.GetFields()[0].GetNode().(type) {
		case *pgq.Node_AStar:
			all, err := c.catalog.TableColumns(ref.Schema, ref.Table)
			if err != nil {
				return nil, err
			}
			selected = append(selected, schema.ColumnNames(all)...)
		case *pgq.Node_String_:
			selected = append(selected, field.String_.GetSval())
		default:
			return nil, wire.FeatureNotSupported(c.rawSQL)
		}
	}

	return &selectInput{table: ref, selected: selected}, nil
}

// resolveColumns matches the selected names against the catalog columns,
// preserving selection order. It returns the physical index and definition
// of every match and the names that did not resolve.
func resolveColumns(all []schema.Column, selected []string) ([]int, []schema.Column, []string) {
	var (
		indices []int
		defs    []schema.Column
		missing []string
	)
	for _, name := range selected {
		found := false
		for idx, def := range all {
			if def.HasName(name) {
				indices = append(indices, idx)
				defs = append(defs, def)
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return indices, defs, missing
}
