// SPDX-License-Identifier: Apache-2.0

package wire

import "strconv"

// ValueKind discriminates the decoded parameter values of the extended
// protocol.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindText
)

// Value is one decoded parameter value. The zero value is the SQL NULL.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Text string
}

func NullValue() Value { return Value{Kind: KindNull} }

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func IntValue(n int64) Value { return Value{Kind: KindInt, Int: n} }

func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// String renders the value in PostgreSQL text format.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "t"
		}
		return "f"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindText:
		return v.Text
	default:
		return ""
	}
}
