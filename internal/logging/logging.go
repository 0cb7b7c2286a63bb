package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Setup installs a logger writing to w (stderr when nil) as the package
// default, so log.Info and friends route through it everywhere.
func Setup(level string, w io.Writer) *log.Logger {
	if nil == w {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if nil != err {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		ReportCaller:    lvl == log.DebugLevel,
		Prefix:          "sightread",
	})
	log.SetDefault(logger)
	return logger
}
