package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeTokenInvalid    = "AUTH_TOKEN_INVALID"
	ErrCodeTokenExpired    = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenMalformed  = "AUTH_TOKEN_MALFORMED"
	ErrCodeSignInRequired  = "AUTH_SIGN_IN_REQUIRED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeOwnContent  = "AUTHZ_OWN_CONTENT"
	ErrCodeNotOwner    = "AUTHZ_NOT_OWNER"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidKind      = "VALIDATION_INVALID_KIND"
	ErrCodeInvalidSortKey   = "VALIDATION_INVALID_SORT_KEY"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeUserNotFound    = "RESOURCE_USER_NOT_FOUND"
	ErrCodeContentNotFound = "RESOURCE_CONTENT_NOT_FOUND"
	ErrCodeContentGone     = "RESOURCE_CONTENT_GONE"
	ErrCodeResourceExists  = "RESOURCE_ALREADY_EXISTS"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Engagement errors (ENGAGEMENT_*)
const (
	ErrCodeToggleFailed = "ENGAGEMENT_TOGGLE_FAILED"
	ErrCodeViewFailed   = "ENGAGEMENT_VIEW_FAILED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeMediaError      = "INTERNAL_MEDIA_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
