package dbbadger

import (
	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
)

type logger struct {
	*log.Entry
}

// NewLogger returns a badger logger writing through logrus. Info and debug
// messages from badger are noisy, so they're logged one level below.
func NewLogger() badger.Logger {
	return logger{log.WithField("module", "badger")}
}

func (l logger) Infof(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}

func (l logger) Debugf(format string, args ...interface{}) {
	l.Entry.Tracef(format, args...)
}
