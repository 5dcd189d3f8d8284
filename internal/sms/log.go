package sms

import (
	"context"
	"log/slog"
)

// LogSender logs SMS sends instead of delivering them. Useful for development.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. If logger is nil, slog.Default() is used.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, message, senderID string, channel Channel, _ MessageType) (*SendResult, error) {
	s.logger.Info("sms.LogSender", "to", to, "from", senderID, "channel", channel, "message", message)
	return &SendResult{MessageID: "logged"}, nil
}
