package service

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"louercar-backend/internal/config"
	"louercar-backend/internal/domain"
)

type emailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func formatAmount(cents int32) string {
	return fmt.Sprintf("R$ %.2f", float64(cents)/100)
}

func (s *emailService) SendPaymentPending(ctx context.Context, email, username string, payment *domain.Payment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment pending for your rental")

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour rental request was approved. A payment of %s is due by %s.\n",
		username, formatAmount(payment.AmountCents), payment.DueDate.Format("02 Jan 2006"))
	switch payment.Method {
	case domain.PaymentMethodPix:
		fmt.Fprintf(&b, "\nPIX key: %s\n", payment.PixKey)
		if payment.PixQRCode != "" {
			fmt.Fprintf(&b, "PIX code: %s\n", payment.PixQRCode)
		}
	case domain.PaymentMethodBoleto:
		fmt.Fprintf(&b, "\nBoleto barcode: %s\nDigitable line: %s\n", payment.BoletoBarcode, payment.BoletoLine)
	}
	if s.cfg.SiteURL != "" {
		fmt.Fprintf(&b, "\nTrack your payment at %s/payments/%d\n", s.cfg.SiteURL, payment.ID)
	}
	b.WriteString("\nBest regards,\nThe LouerCar Team")

	m.SetBody("text/plain", b.String())
	return s.send(m)
}

func (s *emailService) SendPaymentApproved(ctx context.Context, email, username string, payment *domain.Payment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment approved")

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nWe received your payment of %s. Your rental is confirmed, enjoy the ride!\n",
		username, formatAmount(payment.AmountCents))
	if s.cfg.SiteURL != "" {
		fmt.Fprintf(&b, "\nSee your rentals at %s/rentals\n", s.cfg.SiteURL)
	}
	b.WriteString("\nBest regards,\nThe LouerCar Team")

	m.SetBody("text/plain", b.String())
	return s.send(m)
}
