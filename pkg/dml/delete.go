// SPDX-License-Identifier: Apache-2.0

package dml

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// DeleteCommand removes every row of a table. Predicates are not evaluated.
type DeleteCommand struct {
	stmt    *pgq.DeleteStmt
	catalog *catalog.Manager
}

func NewDelete(stmt *pgq.DeleteStmt, cat *catalog.Manager) *DeleteCommand {
	return &DeleteCommand{stmt: stmt, catalog: cat}
}

func (c *DeleteCommand) Execute() (wire.QueryEvent, error) {
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

	count, err := c.catalog.DeleteAll(ref.Schema, ref.Table)
	if err != nil {
		return nil, err
	}
	return wire.RecordsDeleted{Count: count}, nil
}
