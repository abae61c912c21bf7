package auth

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the one-way hash boundary. Injected into services so
// tests can observe whether a comparison was ever attempted.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(bytes), err
}

func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Complexity rule messages, reported together so the user sees every unmet
// rule and not just the first.
const (
	RuleMinLength = "must be at least 8 characters long"
	RuleUppercase = "must contain an uppercase letter"
	RuleLowercase = "must contain a lowercase letter"
	RuleDigit     = "must contain a digit"
	RuleSymbol    = "must contain a symbol"
)

// ValidatePassword returns every complexity rule the password fails.
// An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var failed []string

	if utf8.RuneCountInString(password) < 8 {
		failed = append(failed, RuleMinLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			// Whitespace counts toward length but is not a symbol.
		default:
			hasSymbol = true
		}
	}

	if !hasUpper {
		failed = append(failed, RuleUppercase)
	}
	if !hasLower {
		failed = append(failed, RuleLowercase)
	}
	if !hasDigit {
		failed = append(failed, RuleDigit)
	}
	if !hasSymbol {
		failed = append(failed, RuleSymbol)
	}

	return failed
}
