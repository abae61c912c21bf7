package email

import (
	"crypto/tls"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP via gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer) *SMTPProvider {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPProvider{
		config:   config,
		dialer:   dialer,
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	m.SetAddressHeader("From", from, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to, verifyURL string) error {
	htmlBody, err := p.renderer.Render(TemplateVerification, TemplateData{"VerifyURL": verifyURL})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Verify your HelloStore account",
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) SendPasswordReset(to, resetURL string) error {
	htmlBody, err := p.renderer.Render(TemplatePasswordReset, TemplateData{"ResetURL": resetURL})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Reset your HelloStore password",
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
