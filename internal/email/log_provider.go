package email

import (
	"billpilot_backend/internal/logger"
)

// LogProvider writes emails to the log instead of sending them. Used in
// development when no SMTP host is configured, and in tests.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email (log only)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Info("templated email (log only)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (p *LogProvider) SendVerification(to, firstName, link string) error {
	logger.Info("verification email (log only)", "to", to, "link", link)
	return nil
}

func (p *LogProvider) SendWelcome(to, firstName, link string) error {
	logger.Info("welcome email (log only)", "to", to, "link", link)
	return nil
}

func (p *LogProvider) SendPasswordReset(to, firstName, link string) error {
	logger.Info("password reset email (log only)", "to", to, "link", link)
	return nil
}

func (p *LogProvider) SendResetConfirmation(to, firstName string) error {
	logger.Info("reset confirmation email (log only)", "to", to)
	return nil
}

func (p *LogProvider) Validate() error { return nil }
