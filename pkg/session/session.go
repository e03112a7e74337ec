// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/google/uuid"
)

// Session holds the prepared statements and portals of one client
// connection. Names are unique per registry; re-using a name overwrites.
// There is no eviction: both registries die with the session.
type Session struct {
	id                 uuid.UUID
	preparedStatements map[string]*PreparedStatement
	portals            map[string]*Portal
}

func New() *Session {
	return &Session{
		id:                 uuid.New(),
		preparedStatements: make(map[string]*PreparedStatement),
		portals:            make(map[string]*Portal),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// PreparedStatement looks up a prepared statement by name.
func (s *Session) PreparedStatement(name string) (*PreparedStatement, bool) {
	stmt, ok := s.preparedStatements[name]
	return stmt, ok
}

// SetPreparedStatement registers a prepared statement under a name,
// replacing any previous statement with that name.
func (s *Session) SetPreparedStatement(name string, stmt *PreparedStatement) {
	s.preparedStatements[name] = stmt
}

// Portal looks up a portal by name.
func (s *Session) Portal(name string) (*Portal, bool) {
	portal, ok := s.portals[name]
	return portal, ok
}

// SetPortal registers a portal under a name, replacing any previous portal
// with that name.
func (s *Session) SetPortal(name string, portal *Portal) {
	s.portals[name] = portal
}
