// SPDX-License-Identifier: Apache-2.0

// Package wire holds the client-facing vocabulary of the query engine: the
// events and errors a session emits, the protocol-level column types and
// formats of the extended protocol, and the Sender every event is written
// through.
package wire

// Message is anything that can be sent to a client: a QueryEvent on success
// or a *QueryError on a semantic or protocol violation.
type Message interface {
	message()
}

// Sender serializes query events back to a client session. Implementations
// are expected to be cheap to call repeatedly; a send failure is
// unrecoverable for the session.
type Sender interface {
	Send(Message) error
	Flush() error
}
