// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/planner"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// CreateTableCommand registers a new table and its columns in the catalog.
type CreateTableCommand struct {
	plan    planner.CreateTable
	catalog *catalog.Manager
}

func NewCreateTable(plan planner.CreateTable, cat *catalog.Manager) *CreateTableCommand {
	return &CreateTableCommand{plan: plan, catalog: cat}
}

func (c *CreateTableCommand) Execute() (wire.QueryEvent, error) {
	ref := c.plan.Table
	switch c.catalog.Lookup(ref.Schema, ref.Table) {
	case catalog.SchemaMissing:
		return nil, wire.SchemaDoesNotExist(ref.Schema)
	case catalog.TableFound:
		return nil, wire.TableAlreadyExists(ref.String())
	}
	if err := c.catalog.CreateTable(ref.Schema, ref.Table, c.plan.Columns); err != nil {
		return nil, err
	}
	return wire.TableCreated{}, nil
}
