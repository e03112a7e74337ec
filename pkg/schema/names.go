// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"

	pgq "github.com/pganalyze/pg_query_go/v6"
)

// NamingError reports a qualified name with the wrong number of segments.
type NamingError struct {
	Name   string
	Reason string
}

func (e NamingError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

// SchemaRef names a schema. Schema names are a single segment; constructing
// one from a qualified name fails.
type SchemaRef struct {
	Schema string
}

// SchemaRefFrom normalizes the segments of a qualified name into a schema
// reference. Exactly one segment is required.
func SchemaRefFrom(parts ...string) (SchemaRef, error) {
	if len(parts) != 1 {
		return SchemaRef{}, NamingError{
			Name:   strings.Join(parts, "."),
			Reason: "schema names may not be qualified",
		}
	}
	return SchemaRef{Schema: parts[0]}, nil
}

func (r SchemaRef) String() string {
	return r.Schema
}

// TableRef names a table by schema and table name. Exactly two segments are
// required; the engine does not resolve unqualified table names.
type TableRef struct {
	Schema string
	Table  string
}

// TableRefFrom normalizes the segments of a qualified name into a table
// reference.
func TableRefFrom(parts ...string) (TableRef, error) {
	if len(parts) != 2 {
		return TableRef{}, NamingError{
			Name:   strings.Join(parts, "."),
			Reason: "table names must be qualified as schema.table",
		}
	}
	return TableRef{Schema: parts[0], Table: parts[1]}, nil
}

func (r TableRef) String() string {
	return r.Schema + "." + r.Table
}

// TableRefFromRangeVar resolves a parsed range variable into a table
// reference. Unqualified and catalog-qualified names fail like any other
// wrong segment count.
func TableRefFromRangeVar(rv *pgq.RangeVar) (TableRef, error) {
	parts := make([]string, 0, 3)
	if rv.GetCatalogname() != "" {
		parts = append(parts, rv.GetCatalogname())
	}
	if rv.GetSchemaname() != "" {
		parts = append(parts, rv.GetSchemaname())
	}
	parts = append(parts, rv.GetRelname())
	return TableRefFrom(parts...)
}
