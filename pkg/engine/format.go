// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/jakob-ledermann/database/pkg/wire"
)

// padFormats normalizes a Bind message's format list against n parameters
// or result columns: an empty list means all text, a single format applies
// to every position, and a full-length list is used as-is.
func padFormats(formats []wire.Format, n int) ([]wire.Format, error) {
	switch len(formats) {
	case 0:
		padded := make([]wire.Format, n)
		for i := range padded {
			padded[i] = wire.FormatText
		}
		return padded, nil
	case 1:
		padded := make([]wire.Format, n)
		for i := range padded {
			padded[i] = formats[0]
		}
		return padded, nil
	case n:
		return formats, nil
	default:
		return nil, fmt.Errorf("expected %d field format specifiers, but got %d", len(formats), n)
	}
}
