// Package alert carries user-facing signals (toasts in the web client) out
// of the stores without coupling them to a delivery mechanism.
package alert

import "log"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Alert is a non-fatal, user-visible notice such as a capacity warning or a
// removal confirmation.
type Alert struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives alerts raised by the stores. Implementations must not block.
type Sink interface {
	Notify(a Alert)
}

// LogSink writes alerts to a standard logger.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(a Alert) {
	s.logger.Printf("alert severity=%s title=%q message=%q", a.Severity, a.Title, a.Message)
}

// NopSink discards alerts.
type NopSink struct{}

func (NopSink) Notify(Alert) {}
