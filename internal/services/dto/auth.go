package dto

// RegisterRequest carries the registration form. CaptchaToken and RemoteIP
// feed the bot check and are filled by the handler, not the form binding.
type RegisterRequest struct {
	FirstName string `form:"firstName" json:"firstName" validate:"required,max=100"`
	LastName  string `form:"lastName" json:"lastName" validate:"required,max=100"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required"`

	CaptchaToken string `form:"cf-turnstile-response" json:"-" validate:"-"`
	RemoteIP     string `form:"-" json:"-" validate:"-"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`

	CaptchaToken string `form:"cf-turnstile-response" json:"-" validate:"-"`
	RemoteIP     string `form:"-" json:"-" validate:"-"`
}

type PasswordResetRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Password string `form:"password" json:"password" validate:"required"`
}
