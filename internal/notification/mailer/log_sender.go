package mailer

import (
	"context"

	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"go.uber.org/zap"
)

// LogSender writes emails to the log. It stands in for SendGrid when no API
// key is configured.
type LogSender struct {
	logger logger.ZapLogger
}

func NewLogSender(log logger.ZapLogger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(_ context.Context, _, to, subject, plain, _ string) error {
	s.logger.Info("Email not sent, no provider configured",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(plain)),
	)
	return nil
}
