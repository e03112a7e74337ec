// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// DropTableCommand removes one table and its rows.
type DropTableCommand struct {
	table   schema.TableRef
	catalog *catalog.Manager
}

func NewDropTable(table schema.TableRef, cat *catalog.Manager) *DropTableCommand {
	return &DropTableCommand{table: table, catalog: cat}
}

func (c *DropTableCommand) Execute() (wire.QueryEvent, error) {
	switch c.catalog.Lookup(c.table.Schema, c.table.Table) {
	case catalog.SchemaMissing:
		return nil, wire.SchemaDoesNotExist(c.table.Schema)
	case catalog.TableMissing:
		return nil, wire.TableDoesNotExist(c.table.String())
	}
	if err := c.catalog.DropTable(c.table.Schema, c.table.Table); err != nil {
		return nil, err
	}
	return wire.TableDropped{}, nil
}
