package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationEmail(email, code, userName string) error
	SendWelcomeEmail(email, userName string) error
	SendPasswordResetEmail(email, code string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendVerificationEmail(email, code, userName string) error {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Use the following code to verify your account:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>The code expires in 10 minutes. If you did not register, ignore this email.</p>
	`, userName, code)

	if err := s.send(email, "Verify your GoMart account", body); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, userName string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to GoMart, %s!</h2>
		<p>Your account has been verified and is ready to use.</p>
		<p>Happy shopping,<br>The GoMart Team</p>
	`, userName)

	if err := s.send(email, "Welcome to GoMart!", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, code string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following code to set a new password: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, code)

	if err := s.send(email, "Password reset request", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
