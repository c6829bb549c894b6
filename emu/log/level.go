package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

// SetOutput redirects all log entries to w.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func init() {
	// Module masks do the filtering, let logrus emit everything it receives.
	logrus.SetLevel(logrus.DebugLevel)
}
