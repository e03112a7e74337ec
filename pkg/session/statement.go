// SPDX-License-Identifier: Apache-2.0

// Package session keeps the per-connection state of the extended query
// protocol.
//
// Prepared statements are created by Parse messages: a named, parsed but
// unbound query template with declared parameter types. Bind associates a
// prepared statement with a portal, substituting all parameters so no free
// variables remain. Execute then runs a portal by name. Both registries
// live exactly as long as the session and overwrite on name collision.
package session

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/jakob-ledermann/database/pkg/wire"
)

// PreparedStatement is a parsed query template awaiting parameter binding.
type PreparedStatement struct {
	stmt        *pgq.RawStmt
	rawSQL      string
	paramTypes  []wire.Type
	description wire.Description
}

// NewPreparedStatement constructs a prepared statement. rawSQL keeps the
// source text for diagnostics.
func NewPreparedStatement(stmt *pgq.RawStmt, rawSQL string, paramTypes []wire.Type, description wire.Description) *PreparedStatement {
	return &PreparedStatement{
		stmt:        stmt,
		rawSQL:      rawSQL,
		paramTypes:  paramTypes,
		description: description,
	}
}

// Stmt returns the parsed statement. Callers must clone before mutating.
func (p *PreparedStatement) Stmt() *pgq.RawStmt {
	return p.stmt
}

// RawSQL returns the source text the statement was parsed from.
func (p *PreparedStatement) RawSQL() string {
	return p.rawSQL
}

// ParamTypes returns the declared types of the statement's parameters.
func (p *PreparedStatement) ParamTypes() []wire.Type {
	return p.paramTypes
}

// Description returns the row description of the statement's result.
func (p *PreparedStatement) Description() wire.Description {
	return p.description
}

// Portal is a named, parameter-bound, ready-to-execute query.
type Portal struct {
	statementName string
	stmt          *pgq.RawStmt
	rawSQL        string
	resultFormats []wire.Format
}

// NewPortal constructs a portal over a bound statement.
func NewPortal(statementName string, stmt *pgq.RawStmt, rawSQL string, resultFormats []wire.Format) *Portal {
	return &Portal{
		statementName: statementName,
		stmt:          stmt,
		rawSQL:        rawSQL,
		resultFormats: resultFormats,
	}
}

// StatementName returns the name of the prepared statement the portal was
// bound from.
func (p *Portal) StatementName() string {
	return p.statementName
}

// Stmt returns the bound statement; it contains no free parameters.
func (p *Portal) Stmt() *pgq.RawStmt {
	return p.stmt
}

// RawSQL returns the source text of the originating prepared statement.
func (p *Portal) RawSQL() string {
	return p.rawSQL
}

// ResultFormats returns the desired output format for each result column.
func (p *Portal) ResultFormats() []wire.Format {
	return p.resultFormats
}
