package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager implements TemplateRenderer over html/template
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in account
// email templates.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("failed to load builtin template %s: %w", name, err)
		}
	}

	return tm, nil
}

// Render executes a template with data
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers a template under a name
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// TemplateNames lists the registered template names
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}

// Template names used by the account flows
const (
	TemplateAccountVerification = "account_verification"
	TemplateWelcome             = "welcome"
	TemplateResetRequest        = "request_reset_password"
	TemplateResetSuccess        = "reset_password"
)

var builtinTemplates = map[string]string{
	TemplateAccountVerification: `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello {{.Name}},</h2>
  <p>Thank you for registering with Bill Pilot. Please verify your email
  address by clicking the button below. The link is valid for 15 minutes.</p>
  <p><a href="{{.Link}}" style="background: #1a73e8; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Verify your account</a></p>
  <p>If the button does not work, copy this link into your browser:<br/>{{.Link}}</p>
  <p>If you did not create an account, you can safely ignore this email.</p>
</body>
</html>`,

	TemplateWelcome: `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome {{.Name}},</h2>
  <p>Your account has been verified. You can now log in and start creating
  customers and invoices.</p>
  <p><a href="{{.Link}}" style="background: #1a73e8; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Log in</a></p>
</body>
</html>`,

	TemplateResetRequest: `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello {{.Name}},</h2>
  <p>We received a request to reset your password. Click the button below to
  choose a new one. The link is valid for 15 minutes.</p>
  <p><a href="{{.Link}}" style="background: #1a73e8; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Reset your password</a></p>
  <p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`,

	TemplateResetSuccess: `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello {{.Name}},</h2>
  <p>Your password was reset successfully. All of your active sessions have
  been signed out.</p>
  <p>If this was not you, contact support immediately.</p>
</body>
</html>`,
}
