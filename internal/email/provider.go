package email

// Provider is the outbound notification boundary. The auth flow only ever
// talks to this interface; the SMTP implementation lives behind it.
type Provider interface {
	// Send delivers a prepared email
	Send(email *Email) error

	// SendTemplate renders a named template and delivers the result
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendVerification delivers the account-verification email with the
	// tokenized link
	SendVerification(to, firstName, link string) error

	// SendWelcome delivers the post-verification welcome email
	SendWelcome(to, firstName, link string) error

	// SendPasswordReset delivers the password-reset request email
	SendPasswordReset(to, firstName, link string) error

	// SendResetConfirmation confirms a completed password reset
	SendResetConfirmation(to, firstName string) error

	// Validate checks the provider configuration
	Validate() error
}

// TemplateRenderer renders named html templates
type TemplateRenderer interface {
	// Render executes a template with data
	Render(templateName string, data TemplateData) (string, error)

	// AddTemplate registers a template under a name
	AddTemplate(name string, template string) error
}
