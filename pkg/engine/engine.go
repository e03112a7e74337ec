// SPDX-License-Identifier: Apache-2.0

// Package engine is the query-execution facade: it parses raw SQL, plans
// it, dispatches commands against the catalog, and emits protocol events on
// the session's sender. It drives both the simple query path and the
// Parse/Bind/Execute machine of the extended protocol.
package engine

import (
	"errors"
	"fmt"

	pgq "github.com/pganalyze/pg_query_go/v6"
	"google.golang.org/protobuf/proto"

	"github.com/jakob-ledermann/database/pkg/bind"
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/ddl"
	"github.com/jakob-ledermann/database/pkg/dml"
	"github.com/jakob-ledermann/database/pkg/planner"
	"github.com/jakob-ledermann/database/pkg/session"
	"github.com/jakob-ledermann/database/pkg/wire"
)

// Executor orchestrates one client session. It owns the sender: commands
// and the planner return events and errors, the executor emits them, so
// client-visible ordering is decided in exactly one place.
type Executor struct {
	catalog   *catalog.Manager
	sender    wire.Sender
	session   *session.Session
	processor *planner.Processor
	logger    Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger replaces the default noop logger.
func WithLogger(l Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// New creates an executor for one session over the shared catalog. The
// executor outlives every command it dispatches.
func New(cat *catalog.Manager, sender wire.Sender, opts ...Option) *Executor {
	e := &Executor{
		catalog:   cat,
		sender:    sender,
		session:   session.New(),
		processor: planner.NewProcessor(cat),
		logger:    NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one simple-query request. Parse failures are reported as a
// syntax error. The request is always framed with a single trailing
// QueryComplete, whatever the body emitted.
func (e *Executor) Execute(rawSQL string) error {
	e.logger.LogStatement(e.session.ID().String(), rawSQL)

	stmt, err := e.parse(rawSQL)
	if err != nil {
		if err := e.sendError(err); err != nil {
			return err
		}
	} else if stmt != nil {
		if err := e.processStatement(rawSQL, stmt); err != nil {
			return err
		}
	}
	return e.send(wire.QueryComplete{})
}

// ParsePreparedStatement handles a Parse message: parse the query, compute
// its row description when it is a select, and stash the template under the
// statement name.
func (e *Executor) ParsePreparedStatement(name, rawSQL string, paramTypes []wire.Type) error {
	e.logger.LogParse(e.session.ID().String(), name, rawSQL)

	stmt, err := e.parse(rawSQL)
	if err != nil {
		return e.sendError(err)
	}

	var description wire.Description
	if stmt != nil {
		if sel, ok := stmt.GetStmt().GetNode().(*pgq.Node_SelectStmt); ok {
			description, err = dml.NewSelect(rawSQL, sel.SelectStmt, e.catalog).Describe()
			if err != nil {
				return e.sendError(err)
			}
		}
	}

	types := make([]wire.Type, len(paramTypes))
	copy(types, paramTypes)
	e.session.SetPreparedStatement(name, session.NewPreparedStatement(stmt, rawSQL, types, description))

	return e.send(wire.ParseComplete{})
}

// DescribePreparedStatement reports the declared parameter types and row
// description of a prepared statement.
func (e *Executor) DescribePreparedStatement(name string) error {
	stmt, ok := e.session.PreparedStatement(name)
	if !ok {
		return e.send(wire.PreparedStatementDoesNotExist(name))
	}
	return e.send(wire.PreparedStatementDescribed{
		ParamTypes:  stmt.ParamTypes(),
		Description: stmt.Description(),
	})
}

// BindPreparedStatementToPortal handles a Bind message: decode the raw
// parameters according to the declared types and negotiated formats,
// substitute them into a clone of the statement, and stash the portal.
func (e *Executor) BindPreparedStatementToPortal(
	portalName, statementName string,
	paramFormats []wire.Format,
	rawParams [][]byte,
	resultFormats []wire.Format,
) error {
	e.logger.LogBind(e.session.ID().String(), portalName, statementName)

	prepared, ok := e.session.PreparedStatement(statementName)
	if !ok {
		return e.send(wire.PreparedStatementDoesNotExist(statementName))
	}

	paramTypes := prepared.ParamTypes()
	if len(paramTypes) != len(rawParams) {
		return e.send(wire.ProtocolViolation(fmt.Sprintf(
			"Bind message supplies %d parameters, but prepared statement %q requires %d",
			len(rawParams), statementName, len(paramTypes),
		)))
	}

	paddedParamFormats, err := padFormats(paramFormats, len(rawParams))
	if err != nil {
		return e.send(wire.ProtocolViolation(err.Error()))
	}

	params := make([]wire.Value, 0, len(rawParams))
	for i, raw := range rawParams {
		if raw == nil {
			params = append(params, wire.NullValue())
			continue
		}
		value, err := paramTypes[i].Decode(paddedParamFormats[i], raw)
		if err != nil {
			return e.send(wire.InvalidParameterValue(err.Error()))
		}
		params = append(params, value)
	}

	bound := proto.Clone(prepared.Stmt()).(*pgq.RawStmt)
	if err := bind.Bind(bound, params); err != nil {
		return e.sendError(err)
	}

	paddedResultFormats, err := padFormats(resultFormats, len(prepared.Description()))
	if err != nil {
		return e.send(wire.ProtocolViolation(err.Error()))
	}

	e.session.SetPortal(portalName, session.NewPortal(statementName, bound, prepared.RawSQL(), paddedResultFormats))
	return e.send(wire.BindComplete{})
}

// ExecutePortal runs a bound portal through the same dispatch as a simple
// query. Row chunking is not implemented: a non-zero maxRows is rejected.
func (e *Executor) ExecutePortal(portalName string, maxRows int32) error {
	e.logger.LogExecute(e.session.ID().String(), portalName)

	portal, ok := e.session.Portal(portalName)
	if !ok {
		return e.send(wire.PortalDoesNotExist(portalName))
	}
	if maxRows != 0 {
		return e.send(wire.FeatureNotSupported("fetching a limited number of rows from a portal is not supported"))
	}

	rawSQL := portal.RawSQL()
	if deparsed, err := pgq.Deparse(&pgq.ParseResult{Stmts: []*pgq.RawStmt{portal.Stmt()}}); err == nil {
		rawSQL = deparsed
	}

	if err := e.processStatement(rawSQL, portal.Stmt()); err != nil {
		return err
	}
	return e.send(wire.QueryComplete{})
}

// Flush pushes buffered events to the client.
func (e *Executor) Flush() {
	if err := e.sender.Flush(); err != nil {
		e.logger.LogFlushError(err)
	}
}

// parse runs the SQL parser and reports failures as client-visible syntax
// errors. A nil statement with a nil error means the input was empty. When
// the input holds several statements the last one wins, like the original
// engine.
func (e *Executor) parse(rawSQL string) (*pgq.RawStmt, error) {
	result, err := pgq.Parse(rawSQL)
	if err != nil {
		e.logger.LogParseError(rawSQL, err)
		return nil, wire.SyntaxError(fmt.Sprintf("%q can't be parsed", rawSQL))
	}
	stmts := result.GetStmts()
	if len(stmts) == 0 {
		return nil, nil
	}
	return stmts[len(stmts)-1], nil
}

// processStatement plans one statement and dispatches the resulting plan.
func (e *Executor) processStatement(rawSQL string, stmt *pgq.RawStmt) error {
	pl, err := e.processor.Process(rawSQL, stmt)
	if err != nil {
		return e.sendError(err)
	}

	switch p := pl.(type) {
	case planner.CreateSchema:
		return e.emit(ddl.NewCreateSchema(p, e.catalog).Execute())
	case planner.CreateTable:
		return e.emit(ddl.NewCreateTable(p, e.catalog).Execute())
	case planner.DropSchemas:
		for _, drop := range p.Schemas {
			if err := e.emit(ddl.NewDropSchema(drop, e.catalog).Execute()); err != nil {
				return err
			}
		}
		return nil
	case planner.DropTables:
		for _, table := range p.Tables {
			if err := e.emit(ddl.NewDropTable(table, e.catalog).Execute()); err != nil {
				return err
			}
		}
		return nil
	case planner.Insert:
		return e.emit(dml.NewInsert(rawSQL, p, e.catalog).Execute())
	case planner.Select:
		return e.emit(dml.NewSelect(rawSQL, p.Stmt, e.catalog).Execute())
	case planner.Update:
		return e.emit(dml.NewUpdate(rawSQL, p.Stmt, e.catalog).Execute())
	case planner.Delete:
		return e.emit(dml.NewDelete(p.Stmt, e.catalog).Execute())
	case planner.StartTransaction:
		return e.send(wire.TransactionStarted{})
	case planner.SetVariable:
		return e.send(wire.VariableSet{})
	default:
		return e.send(wire.FeatureNotSupported(rawSQL))
	}
}

// emit sends a command's event, or its client-visible error. System errors
// propagate.
func (e *Executor) emit(event wire.QueryEvent, err error) error {
	if err != nil {
		return e.sendError(err)
	}
	return e.send(event)
}

// sendError emits client-visible errors and swallows them; anything else is
// a system fault for the caller.
func (e *Executor) sendError(err error) error {
	var queryErr *wire.QueryError
	if errors.As(err, &queryErr) {
		return e.send(queryErr)
	}
	return err
}

// send writes one message to the client. Sender failures are unrecoverable
// and surface as system errors.
func (e *Executor) send(msg wire.Message) error {
	if err := e.sender.Send(msg); err != nil {
		return fmt.Errorf("sending query result to client: %w", err)
	}
	return nil
}
