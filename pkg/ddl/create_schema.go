// SPDX-License-Identifier: Apache-2.0

// Package ddl implements the schema- and table-level commands. Each command
// re-validates existence against the catalog at dispatch time, performs the
// effect, and returns the protocol event to emit. Semantic failures are
// returned as *wire.QueryError; anything else is a system fault.
package ddl

import (
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/planner"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// CreateSchemaCommand registers a new schema in the catalog.
type CreateSchemaCommand struct {
	plan    planner.CreateSchema
	catalog *catalog.Manager
}

func NewCreateSchema(plan planner.CreateSchema, cat *catalog.Manager) *CreateSchemaCommand {
	return &CreateSchemaCommand{plan: plan, catalog: cat}
}

func (c *CreateSchemaCommand) Execute() (wire.QueryEvent, error) {
	if c.catalog.SchemaExists(c.plan.Schema) {
		return nil, wire.SchemaAlreadyExists(c.plan.Schema)
	}
	if err := c.catalog.CreateSchema(c.plan.Schema); err != nil {
		return nil, err
	}
	return wire.SchemaCreated{}, nil
}
