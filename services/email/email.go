// Package email delivers best-effort outbound mail. It is a side channel:
// send failures never surface to the caller, they degrade to a log line.
package email

import "fmt"

// Service is any service that can send the password reset email
type Service interface {
	SendPasswordResetEmail(toEmail, token, username, role string)
}

// ResetLink builds the frontend reset URL embedding token and role as query
// parameters.
func ResetLink(baseURL, token, role string) string {
	return fmt.Sprintf("%s/reset-password.html?token=%s&role=%s", baseURL, token, role)
}

func resetEmailHTML(username, resetLink string) string {
	return `<html><body style="font-family: Arial, sans-serif;">` +
		`<h2>Password Reset Request</h2>` +
		`<p>Hi ` + username + `,</p>` +
		`<p>We received a request to reset your Learning Hub password. ` +
		`Click the button below to choose a new one. This link expires in 1 hour.</p>` +
		`<p><a href="` + resetLink + `" style="background:#4f46e5;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">Reset Password</a></p>` +
		`<p>If you did not request this, you can safely ignore this email.</p>` +
		`</body></html>`
}
