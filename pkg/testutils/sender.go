// SPDX-License-Identifier: Apache-2.0

// Package testutils provides helpers shared by the engine's tests.
package testutils

import (
	"github.com/jakob-ledermann/database/pkg/wire"
)

// RecordingSender captures every message the engine emits, in order, so
// tests can assert on the exact client-visible event stream.
type RecordingSender struct {
	messages []wire.Message
	flushed  int
}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

func (s *RecordingSender) Send(msg wire.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func (s *RecordingSender) Flush() error {
	s.flushed++
	return nil
}

// Messages returns everything sent so far.
func (s *RecordingSender) Messages() []wire.Message {
	return s.messages
}

// Reset drops the captured messages.
func (s *RecordingSender) Reset() {
	s.messages = nil
}

// Flushes returns how many times Flush was called.
func (s *RecordingSender) Flushes() int {
	return s.flushed
}
