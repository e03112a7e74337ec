// SPDX-License-Identifier: Apache-2.0

package planner

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/schema"
)

// Plan is the executor's validated representation of one statement's effect.
// There is one variant per executable statement kind; statements the engine
// recognizes but cannot execute become Unsupported.
type Plan interface {
	plan()
}

// CreateSchema registers a new schema.
type CreateSchema struct {
	Schema string
}

// CreateTable registers a new table with resolved column definitions.
type CreateTable struct {
	Table   schema.TableRef
	Columns []schema.Column
}

// SchemaDrop is one schema scheduled for removal.
type SchemaDrop struct {
	Schema  schema.SchemaRef
	Cascade bool
}

// DropSchemas removes one or more schemas.
type DropSchemas struct {
	Schemas []SchemaDrop
}

// DropTables removes one or more tables.
type DropTables struct {
	Tables []schema.TableRef
}

// Insert stores rows into a table. Columns is the optional explicit target
// column list; Source carries the VALUES lists. Existence validation is
// deferred to the insert command.
type Insert struct {
	Table   schema.TableRef
	Columns []string
	Source  *pgq.SelectStmt
}

// Select reads rows. Input validation happens in the select command.
type Select struct {
	Stmt *pgq.SelectStmt
}

// Update rewrites column values of every row of a table.
type Update struct {
	Stmt *pgq.UpdateStmt
}

// Delete removes every row of a table.
type Delete struct {
	Stmt *pgq.DeleteStmt
}

// StartTransaction acknowledges BEGIN without starting a real transaction.
type StartTransaction struct{}

// SetVariable acknowledges SET without recording the variable.
type SetVariable struct{}

// Unsupported marks a statement the engine cannot execute.
type Unsupported struct{}

func (CreateSchema) plan()     {}
func (CreateTable) plan()      {}
func (DropSchemas) plan()      {}
func (DropTables) plan()       {}
func (Insert) plan()           {}
func (Select) plan()           {}
func (Update) plan()           {}
func (Delete) plan()           {}
func (StartTransaction) plan() {}
func (SetVariable) plan()      {}
func (Unsupported) plan()      {}
