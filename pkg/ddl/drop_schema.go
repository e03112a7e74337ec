// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/planner"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// DropSchemaCommand removes one schema. Without cascade the schema must not
// contain tables.
type DropSchemaCommand struct {
	plan    planner.SchemaDrop
	catalog *catalog.Manager
}

func NewDropSchema(plan planner.SchemaDrop, cat *catalog.Manager) *DropSchemaCommand {
	return &DropSchemaCommand{plan: plan, catalog: cat}
}

func (c *DropSchemaCommand) Execute() (wire.QueryEvent, error) {
	name := c.plan.Schema.Schema
	if !c.catalog.SchemaExists(name) {
		return nil, wire.SchemaDoesNotExist(name)
	}
	if !c.plan.Cascade && len(c.catalog.Tables(name)) > 0 {
		return nil, wire.SchemaNotEmpty(name)
	}
	if err := c.catalog.DropSchema(name, c.plan.Cascade); err != nil {
		return nil, err
	}
	return wire.SchemaDropped{}, nil
}
