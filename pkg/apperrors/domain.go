package apperrors

import "net/http"

// Predefined errors. Login failures deliberately carry distinct messages per
// failed check; the message text is the only thing the user learns.
var (
	// Authentication
	ErrUserNotFound       = New(CodeUserNotFound, "User not found.", http.StatusUnauthorized)
	ErrAccountInactive    = New(CodeAccountInactive, "Account is not active.", http.StatusForbidden)
	ErrEmailNotVerified   = New(CodeEmailNotVerified, "Please verify your email address before logging in.", http.StatusForbidden)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid password.", http.StatusUnauthorized)

	// Authorization
	ErrUnauthorized          = New(CodeUnauthorized, "You must be logged in to access this page.", http.StatusUnauthorized)
	ErrForbidden             = New(CodeForbidden, "Access denied. Admin privileges required.", http.StatusForbidden)
	ErrSelfDeletionForbidden = New(CodeSelfDeletionForbidden, "You cannot delete your own account.", http.StatusForbidden)

	// Registration
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "User already exists with this email.", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password does not meet the complexity requirements.", http.StatusBadRequest)
	ErrCaptchaFailed      = New(CodeCaptchaFailed, "Verification failed. Please try again.", http.StatusBadRequest)

	// Verification tokens
	ErrTokenNotFound     = New(CodeTokenNotFound, "Invalid verification link.", http.StatusNotFound)
	ErrTokenExpired      = New(CodeTokenExpired, "This verification link has expired. Please register again.", http.StatusBadRequest)
	ErrResetTokenExpired = New(CodeTokenExpired, "This password reset link has expired. Please request a new one.", http.StatusBadRequest)

	// Resources. ErrUserRecordNotFound is the by-id miss for admin and
	// profile lookups; login failures use ErrUserNotFound above.
	ErrUserRecordNotFound = New(CodeUserRecordNotFound, "User not found.", http.StatusNotFound)
	ErrProductNotFound    = New(CodeProductNotFound, "Product not found.", http.StatusNotFound)
	ErrOrderNotFound      = New(CodeOrderNotFound, "Order not found.", http.StatusNotFound)

	// Checkout
	ErrEmptyCart = New(CodeEmptyCart, "Cart is empty.", http.StatusBadRequest)
)
