// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// SQLSTATE codes attached to client-visible errors. The names follow
// Appendix A of the PostgreSQL documentation.
const (
	CodeSyntaxError                pq.ErrorCode = "42601"
	CodeFeatureNotSupported        pq.ErrorCode = "0A000"
	CodeProtocolViolation          pq.ErrorCode = "08P01"
	CodeInvalidParameterValue      pq.ErrorCode = "22023"
	CodeDuplicateSchema            pq.ErrorCode = "42P06"
	CodeInvalidSchemaName          pq.ErrorCode = "3F000"
	CodeDuplicateTable             pq.ErrorCode = "42P07"
	CodeUndefinedTable             pq.ErrorCode = "42P01"
	CodeUndefinedColumn            pq.ErrorCode = "42703"
	CodeInvalidSQLStatementName    pq.ErrorCode = "26000"
	CodeInvalidCursorName          pq.ErrorCode = "34000"
	CodeDependentObjectsStillExist pq.ErrorCode = "2BP01"
)

// QueryError is a client-visible semantic or protocol violation. It is sent
// on the wire like an event and swallowed at the dispatch boundary, so a
// protocol error never aborts the session.
type QueryError struct {
	Code    pq.ErrorCode
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

func (*QueryError) message() {}

// SyntaxError reports input the parser rejected.
func SyntaxError(message string) *QueryError {
	return &QueryError{Code: CodeSyntaxError, Message: message}
}

// FeatureNotSupported reports SQL the engine recognizes but cannot execute.
func FeatureNotSupported(message string) *QueryError {
	return &QueryError{Code: CodeFeatureNotSupported, Message: message}
}

// ProtocolViolation reports a malformed extended-protocol message.
func ProtocolViolation(message string) *QueryError {
	return &QueryError{Code: CodeProtocolViolation, Message: message}
}

// InvalidParameterValue reports a bound parameter that could not be decoded.
func InvalidParameterValue(message string) *QueryError {
	return &QueryError{Code: CodeInvalidParameterValue, Message: message}
}

func SchemaAlreadyExists(schema string) *QueryError {
	return &QueryError{
		Code:    CodeDuplicateSchema,
		Message: fmt.Sprintf("schema %q already exists", schema),
	}
}

func SchemaDoesNotExist(schema string) *QueryError {
	return &QueryError{
		Code:    CodeInvalidSchemaName,
		Message: fmt.Sprintf("schema %q does not exist", schema),
	}
}

func SchemaNotEmpty(schema string) *QueryError {
	return &QueryError{
		Code:    CodeDependentObjectsStillExist,
		Message: fmt.Sprintf("cannot drop schema %q because other objects depend on it", schema),
	}
}

func TableAlreadyExists(table string) *QueryError {
	return &QueryError{
		Code:    CodeDuplicateTable,
		Message: fmt.Sprintf("table %q already exists", table),
	}
}

func TableDoesNotExist(table string) *QueryError {
	return &QueryError{
		Code:    CodeUndefinedTable,
		Message: fmt.Sprintf("table %q does not exist", table),
	}
}

// ColumnDoesNotExist reports the selected columns that are not part of the
// addressed table.
func ColumnDoesNotExist(columns []string) *QueryError {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	msg := fmt.Sprintf("column %s does not exist", quoted[0])
	if len(quoted) > 1 {
		msg = fmt.Sprintf("columns %s do not exist", strings.Join(quoted, ", "))
	}
	return &QueryError{Code: CodeUndefinedColumn, Message: msg}
}

func PreparedStatementDoesNotExist(name string) *QueryError {
	return &QueryError{
		Code:    CodeInvalidSQLStatementName,
		Message: fmt.Sprintf("prepared statement %q does not exist", name),
	}
}

func PortalDoesNotExist(name string) *QueryError {
	return &QueryError{
		Code:    CodeInvalidCursorName,
		Message: fmt.Sprintf("portal %q does not exist", name),
	}
}
