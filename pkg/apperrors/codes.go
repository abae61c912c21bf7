package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	CodeForbidden             ErrorCode = "FORBIDDEN"
	CodeSelfDeletionForbidden ErrorCode = "SELF_DELETION_FORBIDDEN"

	// Verification tokens
	CodeTokenNotFound ErrorCode = "TOKEN_NOT_FOUND"
	CodeTokenExpired  ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeCaptchaFailed    ErrorCode = "CAPTCHA_FAILED"
	CodeEmptyCart        ErrorCode = "EMPTY_CART"

	// Resources
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeUserRecordNotFound ErrorCode = "USER_RECORD_NOT_FOUND"
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	CodeNotFound           ErrorCode = "NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeAccountInactive    ErrorCode = "ACCOUNT_INACTIVE"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
