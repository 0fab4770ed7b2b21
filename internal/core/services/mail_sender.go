package services

import (
	"context"
	"log/slog"

	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
)

// logMailSender is the default MailSender: the real mailer is an external
// collaborator, so this one only records that a dispatch would have happened.
// It never logs the raw token.
type logMailSender struct {
	logger *slog.Logger
}

// NewLogMailSender creates a MailSender that logs instead of sending.
func NewLogMailSender(logger *slog.Logger) portssvc.MailSender {
	return &logMailSender{logger: logger}
}

func (m *logMailSender) SendPasswordReset(ctx context.Context, email string, rawToken string) error {
	m.logger.InfoContext(ctx, "Password reset token generated", slog.String("email", email))
	return nil
}
