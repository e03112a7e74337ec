// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"github.com/jakob-ledermann/database/pkg/sqltype"
)

// Column describes one column of a table: its display name and the engine
// type used for projection headers and parameter decoding.
type Column struct {
	Name string       `json:"name"`
	Type sqltype.Type `json:"type"`
}

// HasName reports whether the column is addressed by the given name.
func (c Column) HasName(name string) bool {
	return c.Name == name
}

// ColumnNames returns the names of the given columns in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
