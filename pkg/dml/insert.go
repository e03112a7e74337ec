// SPDX-License-Identifier: Apache-2.0

package dml

import (
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/planner"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// InsertCommand stores the rows of a VALUES list into a table. An explicit
// target column list reorders values into catalog column order; columns the
// list leaves out are stored as NULL.
type InsertCommand struct {
	rawSQL  string
	plan    planner.Insert
	catalog *catalog.Manager
}

func NewInsert(rawSQL string, plan planner.Insert, cat *catalog.Manager) *InsertCommand {
	return &InsertCommand{rawSQL: rawSQL, plan: plan, catalog: cat}
}

func (c *InsertCommand) Execute() (wire.QueryEvent, error) {
	ref := c.plan.Table
	switch c.catalog.Lookup(ref.Schema, ref.Table) {
	case catalog.SchemaMissing:
		return nil, wire.SchemaDoesNotExist(ref.Schema)
	case catalog.TableMissing:
		return nil, wire.TableDoesNotExist(ref.String())
	}

	all, err := c.catalog.TableColumns(ref.Schema, ref.Table)
	if err != nil {
		return nil, err
	}

	values := c.plan.Source.GetValuesLists()
	if len(values) == 0 {
		return nil, wire.FeatureNotSupported(c.rawSQL)
	}

	// Positions in catalog order that the value lists fill.
	targets := make([]int, 0, len(all))
	if len(c.plan.Columns) == 0 {
		for idx := range all {
			targets = append(targets, idx)
		}
	} else {
		indices, _, missing := resolveColumns(all, c.plan.Columns)
		if len(missing) > 0 {
			return nil, wire.ColumnDoesNotExist(missing)
		}
		targets = indices
	}

	rows := make([][]string, 0, len(values))
	for _, list := range values {
		items := list.GetList().GetItems()
		if len(items) > len(targets) {
			return nil, wire.SyntaxError("INSERT has more expressions than target columns")
		}

		row := make([]string, len(all))
		for i, item := range items {
			value, err := evalLiteral(item)
			if err != nil {
				return nil, wire.FeatureNotSupported(c.rawSQL)
			}
			row[targets[i]] = value.String()
		}
		rows = append(rows, row)
	}

	count, err := c.catalog.InsertInto(ref.Schema, ref.Table, rows)
	if err != nil {
		return nil, err
	}
	return wire.RecordsInserted{Count: count}, nil
}
