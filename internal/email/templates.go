package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the auth flows.
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
)

// TemplateManager implements TemplateRenderer over html/template.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Built-ins cannot fail to parse; treat an error as a programmer mistake.
	if err := tm.AddTemplate(TemplateVerification, verificationTemplate); err != nil {
		panic(err)
	}
	if err := tm.AddTemplate(TemplatePasswordReset, passwordResetTemplate); err != nil {
		panic(err)
	}
	return tm
}

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

const verificationTemplate = `<html>
<body>
  <h2>Welcome to HelloStore!</h2>
  <p>Please confirm your email address by clicking the link below. The link is
  valid for one hour.</p>
  <p><a href="{{.VerifyURL}}">Verify my email</a></p>
  <p>If the link has expired you will need to register again.</p>
</body>
</html>`

const passwordResetTemplate = `<html>
<body>
  <h2>Password reset</h2>
  <p>A password reset was requested for your HelloStore account. The link is
  valid for one hour.</p>
  <p><a href="{{.ResetURL}}">Reset my password</a></p>
  <p>If you did not request this, you can ignore this email.</p>
</body>
</html>`
