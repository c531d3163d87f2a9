package tallybot

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

const debugKey = "debug"

// SLogger is the logging interface handed to every tallybot component. Debugf
// lines are dropped unless debug logging is enabled; Fatalf logs and
// terminates the process
type SLogger interface {
	Printf(format string, v ...interface{})

	Debugf(format string, v ...interface{})

	Fatalf(format string, v ...interface{})
}

type sLogger struct {
	logger *log.Logger
	debug  bool
	exit   func(code int)
}

// NewSLogger wraps a standard library logger with debug gating
func NewSLogger(base *log.Logger, debug bool) (l SLogger) {
	return &sLogger{logger: base, debug: debug, exit: os.Exit}
}

// NewSLoggerFromConfig wraps a standard library logger with the debug flag
// taken from the configuration
func NewSLoggerFromConfig(v *viper.Viper, base *log.Logger) (l SLogger) {
	return NewSLogger(base, v.GetBool(debugKey))
}

// Debugf logs a debug line when the logger is in debug mode
func (sl *sLogger) Debugf(format string, v ...interface{}) {
	if sl.debug {
		sl.Printf(format, v...)
	}
}

// Printf logs a line by delegating the call to Output
func (sl *sLogger) Printf(format string, v ...interface{}) {
	sl.logger.Output(2, fmt.Sprintf(format, v...))
}

// Fatalf logs a line and exits the process
func (sl *sLogger) Fatalf(format string, v ...interface{}) {
	sl.logger.Output(2, fmt.Sprintf(format, v...))
	sl.exit(1)
}
