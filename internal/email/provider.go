package email

// Provider is the outbound email boundary. Dispatch is fire-and-forget from
// the caller's perspective: a send failure is logged, never retried, and
// never rolls back state that was already persisted.
type Provider interface {
	// Send delivers a fully built message.
	Send(email *Email) error

	// SendVerification delivers the account-verification link.
	SendVerification(to, verifyURL string) error

	// SendPasswordReset delivers the password-reset link.
	SendPasswordReset(to, resetURL string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases the provider resources.
	Close() error
}

// TemplateRenderer renders named email bodies.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
