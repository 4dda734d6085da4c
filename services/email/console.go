package email

import "go.uber.org/zap"

// ConsoleService writes the would-be email to the operational log. Used when
// no mail transport is configured and as the fallback when a send fails.
type ConsoleService struct {
	baseURL string
	logger  *zap.Logger
}

var _ Service = (*ConsoleService)(nil)

// NewConsoleService creates the log-only email service
func NewConsoleService(baseURL string, logger *zap.Logger) *ConsoleService {
	return &ConsoleService{baseURL: baseURL, logger: logger}
}

// SendPasswordResetEmail logs the reset details instead of sending anything
func (s *ConsoleService) SendPasswordResetEmail(toEmail, token, username, role string) {
	s.logger.Info("EMAIL SIMULATION (no mail server configured)",
		zap.String("to", toEmail),
		zap.String("token", token),
		zap.String("username", username),
		zap.String("role", role),
		zap.String("resetLink", ResetLink(s.baseURL, token, role)),
	)
}
