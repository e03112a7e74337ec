// SPDX-License-Identifier: Apache-2.0

package dml

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// UpdateCommand applies SET assignments to every row of a table. The engine
// does not evaluate predicates, so a WHERE clause does not narrow the
// update.
type UpdateCommand struct {
	rawSQL  string
	stmt    *pgq.UpdateStmt
	catalog *catalog.Manager
}

func NewUpdate(rawSQL string, stmt *pgq.UpdateStmt, cat *catalog.Manager) *UpdateCommand {
	return &UpdateCommand{rawSQL: rawSQL, stmt: stmt, catalog: cat}
}

func (c *UpdateCommand) Execute() (wire.QueryEvent, error) {
	ref, err := schema.TableRefFromRangeVar(c.stmt.GetRelation())
	if err != nil {
		return nil, wire.SyntaxError(err.Error())
	}

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

	assignments := make(map[int]string, len(c.stmt.GetTargetList()))
	var missing []string
	for _, target := range c.stmt.GetTargetList() {
		rt := target.GetResTarget()
		indices, _, miss := resolveColumns(all, []string{rt.GetName()})
		if len(miss) > 0 {
			missing = append(missing, miss...)
			continue
		}
		value, err := evalLiteral(rt.GetVal())
		if err != nil {
			return nil, wire.FeatureNotSupported(c.rawSQL)
		}
		assignments[indices[0]] = value.String()
	}
	if len(missing) > 0 {
		return nil, wire.ColumnDoesNotExist(missing)
	}

	count, err := c.catalog.UpdateAll(ref.Schema, ref.Table, assignments)
	if err != nil {
		return nil, err
	}
	return wire.RecordsUpdated{Count: count}, nil
}
