package cmd

import (
	"io"
	"log"
)

// stderrLogger satisfies calculation.Logger. Debug and info lines only appear with --verbose.
type stderrLogger struct {
	l       *log.Logger
	verbose bool
}

func newStderrLogger(w io.Writer, verbose bool) *stderrLogger {
	return &stderrLogger{l: log.New(w, "drawdown: ", log.LstdFlags), verbose: verbose}
}

func (s *stderrLogger) Debugf(format string, args ...any) {
	if s.verbose {
		s.l.Printf("DEBUG "+format, args...)
	}
}

func (s *stderrLogger) Infof(format string, args ...any) {
	if s.verbose {
		s.l.Printf("INFO "+format, args...)
	}
}

func (s *stderrLogger) Warnf(format string, args ...any) {
	s.l.Printf("WARN "+format, args...)
}

func (s *stderrLogger) Errorf(format string, args ...any) {
	s.l.Printf("ERROR "+format, args...)
}
