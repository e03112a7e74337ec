// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob-ledermann/database/pkg/session"
	"github.com/jakob-ledermann/database/pkg/wire"
)

func TestPreparedStatementRegistry(t *testing.T) {
	t.Parallel()

	s := session.New()

	_, ok := s.PreparedStatement("s1")
	assert.False(t, ok)

	first := session.NewPreparedStatement(nil, "SELECT 1", []wire.Type{wire.TypeInteger}, nil)
	s.SetPreparedStatement("s1", first)

	got, ok := s.PreparedStatement("s1")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, "SELECT 1", got.RawSQL())
	assert.Equal(t, []wire.Type{wire.TypeInteger}, got.ParamTypes())

	// Same name overwrites.
	second := session.NewPreparedStatement(nil, "SELECT 2", nil, nil)
	s.SetPreparedStatement("s1", second)
	got, ok = s.PreparedStatement("s1")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestPortalRegistry(t *testing.T) {
	t.Parallel()

	s := session.New()

	_, ok := s.Portal("p1")
	assert.False(t, ok)

	portal := session.NewPortal("s1", nil, "SELECT 1", []wire.Format{wire.FormatText})
	s.SetPortal("p1", portal)

	got, ok := s.Portal("p1")
	require.True(t, ok)
	assert.Same(t, portal, got)
	assert.Equal(t, "s1", got.StatementName())
	assert.Equal(t, []wire.Format{wire.FormatText}, got.ResultFormats())
}

func TestSessionIDsAreUnique(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, session.New().ID(), session.New().ID())
}
