package email

import (
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridService sends mail through the SendGrid API. Any failure falls back
// to the console path rather than propagating an error.
type SendGridService struct {
	key      string
	from     *sgmail.Email
	baseURL  string
	fallback *ConsoleService
	logger   *zap.Logger
}

var _ Service = (*SendGridService)(nil)

// NewSendGridService creates the SendGrid-backed email service
func NewSendGridService(key, fromName, fromEmail, baseURL string, logger *zap.Logger) *SendGridService {
	return &SendGridService{
		key:      key,
		from:     sgmail.NewEmail(fromName, fromEmail),
		baseURL:  baseURL,
		fallback: NewConsoleService(baseURL, logger),
		logger:   logger,
	}
}

// SendPasswordResetEmail composes the HTML reset message and sends it
func (s *SendGridService) SendPasswordResetEmail(toEmail, token, username, role string) {
	resetLink := ResetLink(s.baseURL, token, role)

	to := sgmail.NewEmail(username, toEmail)
	subject := "UEP Learning Hub - Password Reset Request"
	html := resetEmailHTML(username, resetLink)
	message := sgmail.NewSingleEmail(s.from, subject, to, "Reset your password: "+resetLink, html)

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.API(req)
	if err != nil || res.StatusCode >= http.StatusBadRequest {
		s.logger.Error("Failed to send password reset email, falling back to log",
			zap.String("to", toEmail),
			zap.Error(err),
		)
		s.fallback.SendPasswordResetEmail(toEmail, token, username, role)
		return
	}

	s.logger.Info("Password reset email sent", zap.String("to", toEmail))
}
