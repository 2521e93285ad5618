package logging

import "fmt"

// RestyLogger adapts a Logger to resty's Logger interface so that the HTTP
// client's own diagnostics end up in the structured log.
type RestyLogger struct {
	l *Logger
}

// NewRestyLogger returns a resty-compatible logger backed by l.
func NewRestyLogger(l *Logger) *RestyLogger {
	if l == nil {
		l = Default()
	}
	return &RestyLogger{l: l.WithComponent("resty")}
}

func (r *RestyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(fmt.Sprintf(format, v...))
}

func (r *RestyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn(fmt.Sprintf(format, v...))
}

func (r *RestyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(fmt.Sprintf(format, v...))
}
