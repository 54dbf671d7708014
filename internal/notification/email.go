package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Sender delivers customer-facing mail. Callers treat delivery as
// fire-and-forget: failures are logged at the call site, never
// propagated into request results.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, to, orderRef string, totalAmount float64) error
	SendPasswordResetOTP(ctx context.Context, to, otp string) error
}

type smtpSender struct {
	from     string
	password string
	host     string
	port     string
	log      *zap.Logger
}

type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Port     string
}

func NewSMTPSender(cfg SMTPConfig, log *zap.Logger) Sender {
	return &smtpSender{
		from:     cfg.From,
		password: cfg.Password,
		host:     cfg.Host,
		port:     cfg.Port,
		log:      log,
	}
}

func (s *smtpSender) SendOrderConfirmation(ctx context.Context, to, orderRef string, totalAmount float64) error {
	subject := "Subject: Order Confirmation\n"
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := fmt.Sprintf(`
		<h1>Order Confirmation</h1>
		<p>Your order with ID <strong>%s</strong> has been placed successfully.</p>
		<p>Total Amount: <strong>$%.2f</strong></p>
		<p>Thank you for shopping with us!</p>
	`, orderRef, totalAmount)

	if err := s.send(to, subject, mime, body); err != nil {
		return err
	}

	s.log.Info("order confirmation email sent",
		zap.String("to", to),
		zap.String("order_ref", orderRef))
	return nil
}

func (s *smtpSender) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	subject := "Subject: Password Reset Request\n"
	mime := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n"
	body := fmt.Sprintf("You are receiving this email because a password reset was requested for your account.\n\n"+
		"YOUR RESET PASSWORD OTP IS: %s\n\n"+
		"If you did not request this, please ignore this email and your password will remain unchanged.\n", otp)

	if err := s.send(to, subject, mime, body); err != nil {
		return err
	}

	s.log.Info("password reset email sent", zap.String("to", to))
	return nil
}

func (s *smtpSender) send(to, subject, mime, body string) error {
	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
