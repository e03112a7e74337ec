// SPDX-License-Identifier: Apache-2.0

package engine

import "github.com/pterm/pterm"

// Logger records the engine's dispatch activity. Commands themselves do not
// log; everything client-visible goes through the sender instead.
type Logger interface {
	LogStatement(sessionID, sql string)
	LogParse(sessionID, name, sql string)
	LogBind(sessionID, portal, statement string)
	LogExecute(sessionID, portal string)
	LogParseError(sql string, err error)
	LogFlushError(err error)
}

type ptermLogger struct {
	logger pterm.Logger
}

type noopLogger struct{}

// NewLogger returns a Logger backed by pterm's structured logger.
func NewLogger() Logger {
	return &ptermLogger{logger: pterm.DefaultLogger}
}

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *ptermLogger) LogStatement(sessionID, sql string) {
	l.logger.Info("executing statement", l.logger.Args("session", sessionID, "sql", sql))
}

func (l *ptermLogger) LogParse(sessionID, name, sql string) {
	l.logger.Info("parsing prepared statement", l.logger.Args("session", sessionID, "name", name, "sql", sql))
}

func (l *ptermLogger) LogBind(sessionID, portal, statement string) {
	l.logger.Info("binding portal", l.logger.Args("session", sessionID, "portal", portal, "statement", statement))
}

func (l *ptermLogger) LogExecute(sessionID, portal string) {
	l.logger.Info("executing portal", l.logger.Args("session", sessionID, "portal", portal))
}

func (l *ptermLogger) LogParseError(sql string, err error) {
	l.logger.Warn("statement can't be parsed", l.logger.Args("sql", sql, "error", err.Error()))
}

func (l *ptermLogger) LogFlushError(err error) {
	l.logger.Error("flush failed", l.logger.Args("error", err.Error()))
}

func (l *noopLogger) LogStatement(sessionID, sql string)     {}
func (l *noopLogger) LogParse(sessionID, name, sql string)   {}
func (l *noopLogger) LogBind(sessionID, portal, stmt string) {}
func (l *noopLogger) LogExecute(sessionID, portal string)    {}
func (l *noopLogger) LogParseError(sql string, err error)    {}
func (l *noopLogger) LogFlushError(err error)                {}
